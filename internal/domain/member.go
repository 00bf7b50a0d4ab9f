package domain

import "time"

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

// DepartmentMember links a user to a department. PaymentReference is the
// per-department code used to attribute incoming payments without explicit
// matching; it is unique within the department.
type DepartmentMember struct {
	ID               int32      `json:"id"`
	UserID           int32      `json:"user_id"`
	DepartmentID     int32      `json:"department_id"`
	Role             MemberRole `json:"role"`
	PaymentReference string     `json:"payment_reference"`
	JoinedOn         time.Time  `json:"joined_on"`
}

// OrgMembership links a user to an organization. Unique per (user, org).
type OrgMembership struct {
	ID       int32      `json:"id"`
	UserID   int32      `json:"user_id"`
	OrgID    int32      `json:"org_id"`
	Role     MemberRole `json:"role"`
	JoinedOn time.Time  `json:"joined_on"`
}
