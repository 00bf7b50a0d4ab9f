package service

import (
	"context"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type claimService struct {
	claimRepo   repository.ClaimRepository
	paymentRepo repository.PaymentRepository
	memberRepo  repository.MemberRepository
	txManager   repository.TransactionManager
}

func NewClaimService(
	claimRepo repository.ClaimRepository,
	paymentRepo repository.PaymentRepository,
	memberRepo repository.MemberRepository,
	txManager repository.TransactionManager,
) ClaimService {
	return &claimService{
		claimRepo:   claimRepo,
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		txManager:   txManager,
	}
}

func (s *claimService) Submit(ctx context.Context, paymentID, userID, departmentID, orgID int32, transactionCode, details string) (*domain.PaymentClaim, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.OrgID != orgID {
		return nil, domain.E(domain.KindNotFound, "payment not found")
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

	claim := &domain.PaymentClaim{
		PaymentID:       paymentID,
		UserID:          userID,
		DepartmentID:    departmentID,
		TransactionCode: transactionCode,
		Details:         details,
		Status:          domain.ClaimStatusPending,
	}
	// The unique index on payment_id turns a duplicate claim into Conflict.
	if err := s.claimRepo.Create(ctx, claim); err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			return nil, err
		}
		return nil, domain.Internal(err)
	}
	return claim, nil
}

// Approve moves the claim to APPROVED and the linked payment to CLAIMED as
// one transaction: both writes commit together or neither does. The claim's
// department and user overwrite any prior match on the payment.
func (s *claimService) Approve(ctx context.Context, claimID, orgID, approverID int32) (*domain.PaymentClaim, error) {
	claim, err := s.loadScopedClaim(ctx, claimID, orgID)
	if err != nil {
		return nil, err
	}
	if claim.Status != domain.ClaimStatusPending {
		return nil, domain.Ef(domain.KindInvalidState, "claim is already %s", claim.Status)
	}

	reviewedOn := time.Now()
	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		reviewed, err := s.claimRepo.MarkReviewed(ctx, claim.ID, domain.ClaimStatusApproved, approverID, claim.Details, reviewedOn)
		if err != nil {
			return domain.Internal(err)
		}
		if !reviewed {
			return domain.E(domain.KindInvalidState, "claim is no longer pending")
		}
		if err := s.paymentRepo.MarkClaimed(ctx, claim.PaymentID, claim.DepartmentID, claim.UserID); err != nil {
			return domain.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	claim.Status = domain.ClaimStatusApproved
	claim.ReviewedOn = &reviewedOn
	claim.ApprovedBy = &approverID
	return claim, nil
}

// Reject closes the claim and leaves the linked payment untouched.
func (s *claimService) Reject(ctx context.Context, claimID, orgID, approverID int32, reason string) (*domain.PaymentClaim, error) {
	claim, err := s.loadScopedClaim(ctx, claimID, orgID)
	if err != nil {
		return nil, err
	}
	if claim.Status != domain.ClaimStatusPending {
		return nil, domain.Ef(domain.KindInvalidState, "claim is already %s", claim.Status)
	}

	details := claim.Details
	if reason != "" {
		if details != "" {
			details += " | "
		}
		details += "Rejected: " + reason
	}

	reviewedOn := time.Now()
	reviewed, err := s.claimRepo.MarkReviewed(ctx, claim.ID, domain.ClaimStatusRejected, approverID, details, reviewedOn)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !reviewed {
		return nil, domain.E(domain.KindInvalidState, "claim is no longer pending")
	}

	claim.Status = domain.ClaimStatusRejected
	claim.Details = details
	claim.ReviewedOn = &reviewedOn
	claim.ApprovedBy = &approverID
	return claim, nil
}

func (s *claimService) ListByDepartment(ctx context.Context, departmentID int32, status domain.ClaimStatus) ([]domain.PaymentClaim, error) {
	claims, err := s.claimRepo.ListByDepartment(ctx, departmentID, status)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return claims, nil
}

func (s *claimService) loadScopedClaim(ctx context.Context, claimID, orgID int32) (*domain.PaymentClaim, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.GetByID(ctx, claim.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.OrgID != orgID {
		return nil, domain.E(domain.KindNotFound, "claim not found")
	}
	return claim, nil
}
