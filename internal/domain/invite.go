package domain

import "time"

// InviteLink grants organization plus department membership on redemption.
// Invariants: used_count never exceeds max_uses when one is set, and
// is_active drops to false once the link is expired or exhausted.
type InviteLink struct {
	ID           int32      `json:"id"`
	Code         string     `json:"code"`
	DepartmentID int32      `json:"department_id"`
	CreatedBy    int32      `json:"created_by"`
	ExpiresOn    *time.Time `json:"expires_on,omitempty"`
	MaxUses      *int32     `json:"max_uses,omitempty"`
	UsedCount    int32      `json:"used_count"`
	IsActive     bool       `json:"is_active"`
	CreatedOn    time.Time  `json:"created_on"`
}
