package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPendingApproval WithdrawalStatus = "PENDING_APPROVAL"
	WithdrawalStatusApproved        WithdrawalStatus = "APPROVED"
	WithdrawalStatusRejected        WithdrawalStatus = "REJECTED"
	WithdrawalStatusCompleted       WithdrawalStatus = "COMPLETED"
)

type Withdrawal struct {
	ID           int32            `json:"id"`
	DepartmentID int32            `json:"department_id"`
	CreatorID    int32            `json:"creator_id"`
	Amount       decimal.Decimal  `json:"amount"`
	Reason       string           `json:"reason"`
	Status       WithdrawalStatus `json:"status"`
	CreatedOn    time.Time        `json:"created_on"`
	UpdatedOn    time.Time        `json:"updated_on"`
}

// WithdrawalOTP gates completion of an approved withdrawal. At most one
// unused OTP is valid per (withdrawal, user) pair; older codes are marked
// used on reissue, never deleted. Expiry is checked at verification time.
type WithdrawalOTP struct {
	ID           int32     `json:"id"`
	WithdrawalID int32     `json:"withdrawal_id"`
	UserID       int32     `json:"user_id"`
	Code         string    `json:"-"`
	ExpiresOn    time.Time `json:"expires_on"`
	IsUsed       bool      `json:"is_used"`
	CreatedOn    time.Time `json:"created_on"`
}
