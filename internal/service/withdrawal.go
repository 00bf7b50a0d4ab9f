package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/logger"
	"fundledger-backend/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	otpDigits = 6
	otpTTL    = 10 * time.Minute
)

type withdrawalService struct {
	withdrawalRepo repository.WithdrawalRepository
	otpRepo        repository.OTPRepository
	departmentRepo repository.DepartmentRepository
	userRepo       repository.UserRepository
	notifier       Notifier
	audit          AuditService
}

func NewWithdrawalService(
	withdrawalRepo repository.WithdrawalRepository,
	otpRepo repository.OTPRepository,
	departmentRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	audit AuditService,
) WithdrawalService {
	return &withdrawalService{
		withdrawalRepo: withdrawalRepo,
		otpRepo:        otpRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		audit:          audit,
	}
}

func (s *withdrawalService) Request(ctx context.Context, departmentID, creatorID, orgID int32, amount decimal.Decimal, reason string) (*domain.Withdrawal, error) {
	dept, err := s.departmentRepo.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if dept.OrgID != orgID {
		return nil, domain.E(domain.KindNotFound, "department not found")
	}
	if !amount.IsPositive() {
		return nil, domain.E(domain.KindInvalid, "withdrawal amount must be positive")
	}

	w := &domain.Withdrawal{
		DepartmentID: departmentID,
		CreatorID:    creatorID,
		Amount:       amount,
		Reason:       reason,
		Status:       domain.WithdrawalStatusPendingApproval,
	}
	if err := s.withdrawalRepo.Create(ctx, w); err != nil {
		return nil, domain.Internal(err)
	}

	s.audit.Record(ctx, orgID, creatorID, domain.AuditWithdrawalRequested, "withdrawal", w.ID, reason)
	return w, nil
}

// Approve transitions PENDING_APPROVAL to APPROVED and opens the OTP
// challenge: a fresh 6-digit code with a 10-minute expiry is persisted for
// the approver and dispatched to them. The withdrawal only completes once
// that code is verified.
func (s *withdrawalService) Approve(ctx context.Context, withdrawalID, approverID, orgID int32) (*domain.Withdrawal, error) {
	w, err := s.loadScopedWithdrawal(ctx, withdrawalID, orgID)
	if err != nil {
		return nil, err
	}

	ok, err := s.withdrawalRepo.UpdateStatus(ctx, w.ID, domain.WithdrawalStatusApproved, domain.WithdrawalStatusPendingApproval)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !ok {
		return nil, domain.Ef(domain.KindInvalidState, "withdrawal is %s, not pending approval", w.Status)
	}
	w.Status = domain.WithdrawalStatusApproved

	s.audit.Record(ctx, orgID, approverID, domain.AuditWithdrawalApproved, "withdrawal", w.ID, "")

	if err := s.issueOtp(ctx, w.ID, approverID); err != nil {
		return nil, err
	}

	// Tell the requester; best-effort like all notifications.
	if creator, err := s.userRepo.GetByID(ctx, w.CreatorID); err == nil {
		if err := s.notifier.SendWithdrawalApproved(ctx, creator.Email, w.Amount, w.Reason); err != nil {
			logger.Warn("failed to send withdrawal approval notification", "withdrawal_id", w.ID, "error", err)
		}
	}

	return w, nil
}

// VerifyOtp completes an approved withdrawal when the caller presents the
// current unused, unexpired code. Every failure path is audited with its
// reason.
func (s *withdrawalService) VerifyOtp(ctx context.Context, withdrawalID, userID, orgID int32, code string) (*domain.Withdrawal, error) {
	w, err := s.loadScopedWithdrawal(ctx, withdrawalID, orgID)
	if err != nil {
		return nil, err
	}
	if w.Status != domain.WithdrawalStatusApproved {
		return nil, domain.Ef(domain.KindInvalidState, "withdrawal is %s, not approved", w.Status)
	}

	otp, err := s.otpRepo.GetUnused(ctx, withdrawalID, userID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			s.audit.Record(ctx, orgID, userID, domain.AuditOTPVerificationFailed, "withdrawal", withdrawalID, "no valid OTP")
		}
		return nil, err
	}
	if time.Now().After(otp.ExpiresOn) {
		s.audit.Record(ctx, orgID, userID, domain.AuditOTPVerificationFailed, "withdrawal", withdrawalID, "OTP expired")
		return nil, domain.E(domain.KindExpired, "OTP has expired")
	}
	if otp.Code != code {
		s.audit.Record(ctx, orgID, userID, domain.AuditOTPVerificationFailed, "withdrawal", withdrawalID, "OTP code mismatch")
		return nil, domain.E(domain.KindInvalid, "invalid OTP code")
	}

	if err := s.otpRepo.MarkUsed(ctx, otp.ID); err != nil {
		return nil, domain.Internal(err)
	}

	ok, err := s.withdrawalRepo.UpdateStatus(ctx, w.ID, domain.WithdrawalStatusCompleted, domain.WithdrawalStatusApproved)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !ok {
		return nil, domain.E(domain.KindInvalidState, "withdrawal is no longer approved")
	}
	w.Status = domain.WithdrawalStatusCompleted

	s.audit.Record(ctx, orgID, userID, domain.AuditWithdrawalCompleted, "withdrawal", w.ID, "")
	return w, nil
}

// ResendOtp invalidates every unused code for the pair and issues a fresh
// one. No withdrawal-status precondition is enforced here; verification
// still refuses anything not APPROVED.
func (s *withdrawalService) ResendOtp(ctx context.Context, withdrawalID, userID, orgID int32) error {
	w, err := s.loadScopedWithdrawal(ctx, withdrawalID, orgID)
	if err != nil {
		return err
	}

	if err := s.issueOtp(ctx, w.ID, userID); err != nil {
		return err
	}

	s.audit.Record(ctx, orgID, userID, domain.AuditOTPResent, "withdrawal", w.ID, "")
	return nil
}

func (s *withdrawalService) Reject(ctx context.Context, withdrawalID, rejecterID, orgID int32, reason string) (*domain.Withdrawal, error) {
	w, err := s.loadScopedWithdrawal(ctx, withdrawalID, orgID)
	if err != nil {
		return nil, err
	}

	ok, err := s.withdrawalRepo.UpdateStatus(ctx, w.ID, domain.WithdrawalStatusRejected,
		domain.WithdrawalStatusPendingApproval, domain.WithdrawalStatusApproved)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !ok {
		return nil, domain.Ef(domain.KindInvalidState, "withdrawal is %s and cannot be rejected", w.Status)
	}
	w.Status = domain.WithdrawalStatusRejected

	s.audit.Record(ctx, orgID, rejecterID, domain.AuditWithdrawalRejected, "withdrawal", w.ID, reason)
	return w, nil
}

// issueOtp keeps the one-unused-code-per-pair invariant: older codes are
// marked used before the new one is persisted and dispatched.
func (s *withdrawalService) issueOtp(ctx context.Context, withdrawalID, userID int32) error {
	if err := s.otpRepo.InvalidateAll(ctx, withdrawalID, userID); err != nil {
		return domain.Internal(err)
	}

	code, err := randomOtpCode()
	if err != nil {
		return domain.Internal(err)
	}

	otp := &domain.WithdrawalOTP{
		WithdrawalID: withdrawalID,
		UserID:       userID,
		Code:         code,
		ExpiresOn:    time.Now().Add(otpTTL),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return domain.Internal(err)
	}

	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		if err := s.notifier.SendOTP(ctx, user.Email, code); err != nil {
			logger.Warn("failed to send OTP", "withdrawal_id", withdrawalID, "user_id", userID, "error", err)
		}
	}
	return nil
}

func (s *withdrawalService) loadScopedWithdrawal(ctx context.Context, withdrawalID, orgID int32) (*domain.Withdrawal, error) {
	w, err := s.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	dept, err := s.departmentRepo.GetByID(ctx, w.DepartmentID)
	if err != nil {
		return nil, err
	}
	if dept.OrgID != orgID {
		return nil, domain.E(domain.KindNotFound, "withdrawal not found")
	}
	return w, nil
}

func randomOtpCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}
