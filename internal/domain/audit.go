package domain

import "time"

// Audit actions emitted by the withdrawal workflow.
const (
	AuditWithdrawalRequested   = "WITHDRAWAL_REQUESTED"
	AuditWithdrawalApproved    = "WITHDRAWAL_APPROVED"
	AuditWithdrawalRejected    = "WITHDRAWAL_REJECTED"
	AuditWithdrawalCompleted   = "WITHDRAWAL_COMPLETED"
	AuditOTPResent             = "OTP_RESENT"
	AuditOTPVerificationFailed = "OTP_VERIFICATION_FAILED"
)

// AuditEvent is an append-only record of who did what to which resource.
// Writing one is best-effort; a failed append never fails the operation
// that emitted it.
type AuditEvent struct {
	ID           int32     `json:"id"`
	OrgID        int32     `json:"org_id"`
	UserID       int32     `json:"user_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   int32     `json:"resource_id"`
	Details      string    `json:"details,omitempty"`
	CreatedOn    time.Time `json:"created_on"`
}
