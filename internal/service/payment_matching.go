package service

import (
	"context"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type paymentMatchingService struct {
	paymentRepo repository.PaymentRepository
	memberRepo  repository.MemberRepository
}

func NewPaymentMatchingService(paymentRepo repository.PaymentRepository, memberRepo repository.MemberRepository) PaymentMatchingService {
	return &paymentMatchingService{paymentRepo: paymentRepo, memberRepo: memberRepo}
}

func (s *paymentMatchingService) MatchByIdentity(ctx context.Context, paymentID, orgID, departmentID, userID int32) (*domain.Payment, error) {
	payment, err := s.loadScopedPayment(ctx, paymentID, orgID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusUnmatched {
		return nil, domain.Ef(domain.KindInvalidState, "payment is already %s", payment.Status)
	}

	if _, err := s.memberRepo.GetMember(ctx, userID, departmentID); err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.E(domain.KindNotMember, "user is not a member of this department")
		}
		return nil, err
	}

	return s.applyMatch(ctx, payment, departmentID, userID, "")
}

func (s *paymentMatchingService) MatchByReference(ctx context.Context, paymentID, orgID, departmentID int32, reference string) (*domain.Payment, error) {
	payment, err := s.loadScopedPayment(ctx, paymentID, orgID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusUnmatched {
		return nil, domain.Ef(domain.KindInvalidState, "payment is already %s", payment.Status)
	}

	member, err := s.memberRepo.GetMemberByReference(ctx, departmentID, reference)
	if err != nil {
		return nil, err
	}

	return s.applyMatch(ctx, payment, departmentID, member.UserID, member.PaymentReference)
}

// Unmatch unconditionally reverts the payment to UNMATCHED, regardless of
// prior status. A CLAIMED payment reverts too; its approved claim is left
// as-is.
func (s *paymentMatchingService) Unmatch(ctx context.Context, paymentID, orgID int32) (*domain.Payment, error) {
	payment, err := s.loadScopedPayment(ctx, paymentID, orgID)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.ResetUnmatched(ctx, payment.ID); err != nil {
		return nil, domain.Internal(err)
	}

	payment.Status = domain.PaymentStatusUnmatched
	payment.DepartmentID = nil
	payment.UserID = nil
	return payment, nil
}

func (s *paymentMatchingService) ListUnmatched(ctx context.Context, orgID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	payments, total, err := s.paymentRepo.ListUnmatched(ctx, orgID, page, pageSize)
	if err != nil {
		return nil, 0, domain.Internal(err)
	}
	return payments, total, nil
}

func (s *paymentMatchingService) loadScopedPayment(ctx context.Context, paymentID, orgID int32) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.OrgID != orgID {
		return nil, domain.E(domain.KindNotFound, "payment not found")
	}
	return payment, nil
}

func (s *paymentMatchingService) applyMatch(ctx context.Context, payment *domain.Payment, departmentID, userID int32, reference string) (*domain.Payment, error) {
	matched, err := s.paymentRepo.MarkMatched(ctx, payment.ID, departmentID, userID, reference)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !matched {
		// Lost the race to a concurrent match or claim.
		return nil, domain.E(domain.KindInvalidState, "payment is no longer unmatched")
	}

	payment.Status = domain.PaymentStatusMatched
	payment.DepartmentID = &departmentID
	payment.UserID = &userID
	if reference != "" {
		payment.Reference = reference
	}
	return payment, nil
}
