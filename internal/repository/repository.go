package repository

import (
	"context"
	"time"

	"fundledger-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	ListUnmatched(ctx context.Context, orgID int32, page, pageSize int32) ([]domain.Payment, int32, error)

	// MarkMatched is a conditional transition: it only succeeds while the
	// payment is still UNMATCHED and reports whether a row was updated, so
	// two concurrent matches cannot both win.
	MarkMatched(ctx context.Context, paymentID, departmentID, userID int32, reference string) (bool, error)

	// MarkClaimed stamps the claim's department and user onto the payment,
	// overwriting any prior match. Runs inside claim approval's transaction.
	MarkClaimed(ctx context.Context, paymentID, departmentID, userID int32) error

	// ResetUnmatched unconditionally reverts the payment to UNMATCHED and
	// clears its department and user.
	ResetUnmatched(ctx context.Context, paymentID int32) error

	// SumContributions totals MATCHED and CLAIMED payment amounts for the
	// member up to and including asOf.
	SumContributions(ctx context.Context, departmentID, userID int32, asOf time.Time) (decimal.Decimal, error)
}

type MemberRepository interface {
	CreateMember(ctx context.Context, m *domain.DepartmentMember) error
	GetMember(ctx context.Context, userID, departmentID int32) (*domain.DepartmentMember, error)
	GetMemberByReference(ctx context.Context, departmentID int32, reference string) (*domain.DepartmentMember, error)
	ListMembers(ctx context.Context, departmentID int32) ([]domain.DepartmentMember, error)
	ReferenceExists(ctx context.Context, departmentID int32, reference string) (bool, error)

	CreateOrgMembership(ctx context.Context, m *domain.OrgMembership) error
	GetOrgMembership(ctx context.Context, userID, orgID int32) (*domain.OrgMembership, error)
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Department, error)
	ListByOrg(ctx context.Context, orgID int32) ([]domain.Department, error)
	ListAll(ctx context.Context) ([]domain.Department, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ClaimRepository interface {
	Create(ctx context.Context, c *domain.PaymentClaim) error
	GetByID(ctx context.Context, id int32) (*domain.PaymentClaim, error)
	GetByPaymentID(ctx context.Context, paymentID int32) (*domain.PaymentClaim, error)
	ListByDepartment(ctx context.Context, departmentID int32, status domain.ClaimStatus) ([]domain.PaymentClaim, error)

	// MarkReviewed is a conditional transition out of PENDING; it reports
	// whether a row was updated.
	MarkReviewed(ctx context.Context, claimID int32, status domain.ClaimStatus, reviewerID int32, details string, reviewedOn time.Time) (bool, error)
}

type WithdrawalRepository interface {
	Create(ctx context.Context, w *domain.Withdrawal) error
	GetByID(ctx context.Context, id int32) (*domain.Withdrawal, error)
	ListByDepartment(ctx context.Context, departmentID int32, status domain.WithdrawalStatus) ([]domain.Withdrawal, error)

	// UpdateStatus transitions to the target status only while the current
	// status is one of allowedFrom, reporting whether a row was updated.
	UpdateStatus(ctx context.Context, id int32, to domain.WithdrawalStatus, allowedFrom ...domain.WithdrawalStatus) (bool, error)
}

type OTPRepository interface {
	Create(ctx context.Context, otp *domain.WithdrawalOTP) error

	// GetUnused returns the current unused OTP for the pair, or a NotFound
	// error when none exists.
	GetUnused(ctx context.Context, withdrawalID, userID int32) (*domain.WithdrawalOTP, error)
	MarkUsed(ctx context.Context, otpID int32) error

	// InvalidateAll marks every unused OTP for the pair as used. Codes are
	// never deleted.
	InvalidateAll(ctx context.Context, withdrawalID, userID int32) error
}

type InviteRepository interface {
	Create(ctx context.Context, link *domain.InviteLink) error
	GetByCode(ctx context.Context, code string) (*domain.InviteLink, error)

	// ConsumeUse atomically increments used_count while the link is active
	// and below its cap, deactivating it when the cap is reached. Reports
	// whether a row was updated; a false result means a concurrent
	// redemption took the last use.
	ConsumeUse(ctx context.Context, id int32) (bool, error)

	// DeactivateExpired flips is_active off for links past their expiry and
	// returns how many were swept.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type AuditRepository interface {
	// Append is write-only; audit events are never updated or deleted.
	Append(ctx context.Context, event *domain.AuditEvent) error
}

// TransactionManager runs fn inside a single database transaction. Claim
// approval's claim-plus-payment mutation commits through it or not at all.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
