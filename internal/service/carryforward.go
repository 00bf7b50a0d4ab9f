package service

import (
	"context"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type carryForwardService struct {
	paymentRepo    repository.PaymentRepository
	memberRepo     repository.MemberRepository
	departmentRepo repository.DepartmentRepository
}

func NewCarryForwardService(
	paymentRepo repository.PaymentRepository,
	memberRepo repository.MemberRepository,
	departmentRepo repository.DepartmentRepository,
) CarryForwardService {
	return &carryForwardService{
		paymentRepo:    paymentRepo,
		memberRepo:     memberRepo,
		departmentRepo: departmentRepo,
	}
}

// Calculate derives the member's cleared-months/remainder balance from their
// matched and claimed payments up to asOf. The result is recomputed on every
// call so it always reflects the latest matches.
func (s *carryForwardService) Calculate(ctx context.Context, departmentID, userID int32, asOf time.Time) (*domain.CarryForwardResult, error) {
	dept, err := s.departmentRepo.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if dept.MonthlyContribution == nil || !dept.MonthlyContribution.IsPositive() {
		return nil, nil
	}

	if _, err := s.memberRepo.GetMember(ctx, userID, departmentID); err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}

	total, err := s.paymentRepo.SumContributions(ctx, departmentID, userID, asOf)
	if err != nil {
		return nil, domain.Internal(err)
	}

	monthly := *dept.MonthlyContribution
	months := total.Div(monthly).Floor()
	carry := total.Sub(months.Mul(monthly))

	return &domain.CarryForwardResult{
		UserID:           userID,
		DepartmentID:     departmentID,
		MonthlyAmount:    monthly,
		TotalContributed: total,
		MonthsCleared:    int32(months.IntPart()),
		CarryForward:     carry,
		BalanceDate:      asOf,
	}, nil
}

// DepartmentYearSummary applies the per-member calculation with asOf pinned
// to the first instant of the following year.
func (s *carryForwardService) DepartmentYearSummary(ctx context.Context, departmentID int32, year int) ([]domain.CarryForwardResult, error) {
	members, err := s.memberRepo.ListMembers(ctx, departmentID)
	if err != nil {
		return nil, domain.Internal(err)
	}

	asOf := yearEnd(year)
	var results []domain.CarryForwardResult
	for _, m := range members {
		res, err := s.Calculate(ctx, departmentID, m.UserID, asOf)
		if err != nil {
			return nil, err
		}
		if res != nil {
			results = append(results, *res)
		}
	}
	return results, nil
}

func (s *carryForwardService) OrganizationYearSummary(ctx context.Context, orgID int32, year int) (map[int32][]domain.CarryForwardResult, error) {
	departments, err := s.departmentRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, domain.Internal(err)
	}

	summary := make(map[int32][]domain.CarryForwardResult, len(departments))
	for _, dept := range departments {
		results, err := s.DepartmentYearSummary(ctx, dept.ID, year)
		if err != nil {
			return nil, err
		}
		summary[dept.ID] = results
	}
	return summary, nil
}

func yearEnd(year int) time.Time {
	return time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
}
