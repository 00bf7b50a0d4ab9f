package service

import (
	"context"
	"time"

	"fundledger-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type ReferenceService interface {
	// GenerateReference issues a payment reference that is unique among the
	// department's members, or fails with Conflict after a bounded number
	// of attempts.
	GenerateReference(ctx context.Context, departmentID int32) (string, error)
}

type PaymentMatchingService interface {
	MatchByIdentity(ctx context.Context, paymentID, orgID, departmentID, userID int32) (*domain.Payment, error)
	MatchByReference(ctx context.Context, paymentID, orgID, departmentID int32, reference string) (*domain.Payment, error)
	Unmatch(ctx context.Context, paymentID, orgID int32) (*domain.Payment, error)
	ListUnmatched(ctx context.Context, orgID int32, page, pageSize int32) ([]domain.Payment, int32, error)
}

type CarryForwardService interface {
	// Calculate returns nil (without error) when the department has no
	// monthly contribution configured or the user is not a member.
	Calculate(ctx context.Context, departmentID, userID int32, asOf time.Time) (*domain.CarryForwardResult, error)
	DepartmentYearSummary(ctx context.Context, departmentID int32, year int) ([]domain.CarryForwardResult, error)
	OrganizationYearSummary(ctx context.Context, orgID int32, year int) (map[int32][]domain.CarryForwardResult, error)
}

type ClaimService interface {
	Submit(ctx context.Context, paymentID, userID, departmentID, orgID int32, transactionCode, details string) (*domain.PaymentClaim, error)
	Approve(ctx context.Context, claimID, orgID, approverID int32) (*domain.PaymentClaim, error)
	Reject(ctx context.Context, claimID, orgID, approverID int32, reason string) (*domain.PaymentClaim, error)
	ListByDepartment(ctx context.Context, departmentID int32, status domain.ClaimStatus) ([]domain.PaymentClaim, error)
}

type WithdrawalService interface {
	Request(ctx context.Context, departmentID, creatorID, orgID int32, amount decimal.Decimal, reason string) (*domain.Withdrawal, error)
	Approve(ctx context.Context, withdrawalID, approverID, orgID int32) (*domain.Withdrawal, error)
	VerifyOtp(ctx context.Context, withdrawalID, userID, orgID int32, code string) (*domain.Withdrawal, error)
	ResendOtp(ctx context.Context, withdrawalID, userID, orgID int32) error
	Reject(ctx context.Context, withdrawalID, rejecterID, orgID int32, reason string) (*domain.Withdrawal, error)
}

type AcceptInviteInput struct {
	Code     string
	Token    string
	Email    string
	Password string
	Name     string
}

type AcceptInviteResult struct {
	User         *domain.User
	Member       *domain.DepartmentMember
	AccessToken  string
	RefreshToken string
}

type InviteService interface {
	CreateLink(ctx context.Context, departmentID, createdBy int32, expiresOn *time.Time, maxUses *int32, email string) (*domain.InviteLink, error)
	Accept(ctx context.Context, input AcceptInviteInput) (*AcceptInviteResult, error)
	Validate(ctx context.Context, code string) (*domain.InviteLink, error)
}

// AuditService records workflow events. Recording is best-effort: failures
// are logged and never surfaced to the caller.
type AuditService interface {
	Record(ctx context.Context, orgID, userID int32, action, resourceType string, resourceID int32, details string)
}

// Notifier is the outbound notification collaborator. All sends are
// best-effort with no retry.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
	SendWithdrawalApproved(ctx context.Context, email string, amount decimal.Decimal, reason string) error
	SendInvite(ctx context.Context, email, code, url string) error
	SendYearSummary(ctx context.Context, email string, year int, result domain.CarryForwardResult) error
}
