package service_test

import (
	"context"
	"testing"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func deptWithMonthly(id, orgID int32, monthly string) *domain.Department {
	amount := decimal.RequireFromString(monthly)
	return &domain.Department{ID: id, OrgID: orgID, Name: "Ops", MonthlyContribution: &amount}
}

func TestCarryForwardService_Calculate(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	newService := func() (*MockPaymentRepo, *MockMemberRepo, *MockDepartmentRepo, service.CarryForwardService) {
		mockPaymentRepo := new(MockPaymentRepo)
		mockMemberRepo := new(MockMemberRepo)
		mockDeptRepo := new(MockDepartmentRepo)
		svc := service.NewCarryForwardService(mockPaymentRepo, mockMemberRepo, mockDeptRepo)
		return mockPaymentRepo, mockMemberRepo, mockDeptRepo, svc
	}

	t.Run("ClearsWholeMonthsAndCarriesRemainder", func(t *testing.T) {
		mockPaymentRepo, mockMemberRepo, mockDeptRepo, svc := newService()

		mockDeptRepo.On("GetByID", ctx, int32(3)).Return(deptWithMonthly(3, 10, "1000"), nil).Once()
		mockMemberRepo.On("GetMember", ctx, int32(7), int32(3)).
			Return(&domain.DepartmentMember{UserID: 7, DepartmentID: 3}, nil).Once()
		mockPaymentRepo.On("SumContributions", ctx, int32(3), int32(7), asOf).
			Return(decimal.RequireFromString("2500"), nil).Once()

		res, err := svc.Calculate(ctx, 3, 7, asOf)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), res.MonthsCleared)
		assert.True(t, res.CarryForward.Equal(decimal.RequireFromString("500")))
		assert.True(t, res.TotalContributed.Equal(decimal.RequireFromString("2500")))
	})

	t.Run("BelowOneMonthClearsNothing", func(t *testing.T) {
		mockPaymentRepo, mockMemberRepo, mockDeptRepo, svc := newService()

		mockDeptRepo.On("GetByID", ctx, int32(3)).Return(deptWithMonthly(3, 10, "1000"), nil).Once()
		mockMemberRepo.On("GetMember", ctx, int32(7), int32(3)).
			Return(&domain.DepartmentMember{UserID: 7, DepartmentID: 3}, nil).Once()
		mockPaymentRepo.On("SumContributions", ctx, int32(3), int32(7), asOf).
			Return(decimal.RequireFromString("999"), nil).Once()

		res, err := svc.Calculate(ctx, 3, 7, asOf)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), res.MonthsCleared)
		assert.True(t, res.CarryForward.Equal(decimal.RequireFromString("999")))
	})

	t.Run("ExactMultipleLeavesZeroCarry", func(t *testing.T) {
		mockPaymentRepo, mockMemberRepo, mockDeptRepo, svc := newService()

		mockDeptRepo.On("GetByID", ctx, int32(3)).Return(deptWithMonthly(3, 10, "250.50"), nil).Once()
		mockMemberRepo.On("GetMember", ctx, int32(7), int32(3)).
			Return(&domain.DepartmentMember{UserID: 7, DepartmentID: 3}, nil).Once()
		mockPaymentRepo.On("SumContributions", ctx, int32(3), int32(7), asOf).
			Return(decimal.RequireFromString("751.50"), nil).Once()

		res, err := svc.Calculate(ctx, 3, 7, asOf)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), res.MonthsCleared)
		assert.True(t, res.CarryForward.IsZero())
	})

	t.Run("NoMonthlyContributionConfigured", func(t *testing.T) {
		_, _, mockDeptRepo, svc := newService()

		mockDeptRepo.On("GetByID", ctx, int32(3)).
			Return(&domain.Department{ID: 3, OrgID: 10, Name: "Ops"}, nil).Once()

		res, err := svc.Calculate(ctx, 3, 7, asOf)
		assert.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("NonMemberHasNoBalance", func(t *testing.T) {
		_, mockMemberRepo, mockDeptRepo, svc := newService()

		mockDeptRepo.On("GetByID", ctx, int32(3)).Return(deptWithMonthly(3, 10, "1000"), nil).Once()
		mockMemberRepo.On("GetMember", ctx, int32(7), int32(3)).
			Return(nil, domain.E(domain.KindNotFound, "member not found")).Once()

		res, err := svc.Calculate(ctx, 3, 7, asOf)
		assert.NoError(t, err)
		assert.Nil(t, res)
	})
}

func TestCarryForwardService_DepartmentYearSummary(t *testing.T) {
	ctx := context.Background()

	mockPaymentRepo := new(MockPaymentRepo)
	mockMemberRepo := new(MockMemberRepo)
	mockDeptRepo := new(MockDepartmentRepo)
	svc := service.NewCarryForwardService(mockPaymentRepo, mockMemberRepo, mockDeptRepo)

	yearEnd := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	mockMemberRepo.On("ListMembers", ctx, int32(3)).Return([]domain.DepartmentMember{
		{UserID: 7, DepartmentID: 3},
		{UserID: 8, DepartmentID: 3},
	}, nil).Once()
	mockDeptRepo.On("GetByID", ctx, int32(3)).Return(deptWithMonthly(3, 10, "1000"), nil).Twice()
	mockMemberRepo.On("GetMember", ctx, int32(7), int32(3)).
		Return(&domain.DepartmentMember{UserID: 7, DepartmentID: 3}, nil).Once()
	mockMemberRepo.On("GetMember", ctx, int32(8), int32(3)).
		Return(&domain.DepartmentMember{UserID: 8, DepartmentID: 3}, nil).Once()
	mockPaymentRepo.On("SumContributions", ctx, int32(3), int32(7), yearEnd).
		Return(decimal.RequireFromString("12000"), nil).Once()
	mockPaymentRepo.On("SumContributions", ctx, int32(3), int32(8), yearEnd).
		Return(decimal.RequireFromString("11500"), nil).Once()

	results, err := svc.DepartmentYearSummary(ctx, 3, 2025)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, int32(12), results[0].MonthsCleared)
	assert.Equal(t, int32(11), results[1].MonthsCleared)
	assert.True(t, results[1].CarryForward.Equal(decimal.RequireFromString("500")))
	mockPaymentRepo.AssertExpectations(t)
}
