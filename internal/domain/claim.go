package domain

import "time"

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "PENDING"
	ClaimStatusApproved ClaimStatus = "APPROVED"
	ClaimStatusRejected ClaimStatus = "REJECTED"
)

// PaymentClaim is a member's assertion that an unmatched payment belongs to
// them. At most one claim exists per payment. APPROVED and REJECTED are
// terminal.
type PaymentClaim struct {
	ID              int32       `json:"id"`
	PaymentID       int32       `json:"payment_id"`
	UserID          int32       `json:"user_id"`
	DepartmentID    int32       `json:"department_id"`
	TransactionCode string      `json:"transaction_code"`
	Details         string      `json:"details,omitempty"`
	Status          ClaimStatus `json:"status"`
	SubmittedOn     time.Time   `json:"submitted_on"`
	ReviewedOn      *time.Time  `json:"reviewed_on,omitempty"`
	ApprovedBy      *int32      `json:"approved_by,omitempty"`
}
