package service_test

import (
	"context"
	"testing"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func unmatchedPayment(id, orgID int32) *domain.Payment {
	return &domain.Payment{
		ID:     id,
		OrgID:  orgID,
		Amount: decimal.NewFromInt(1000),
		Status: domain.PaymentStatusUnmatched,
	}
}

func TestPaymentMatchingService_MatchByIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockPaymentRepo := new(MockPaymentRepo)
		mockMemberRepo := new(MockMemberRepo)
		svc := service.NewPaymentMatchingService(mockPaymentRepo, mockMemberRepo)

		mockPaymentRepo.On("GetByID", ctx, int32(1)).Return(unmatchedPayment(1, 10), nil).Once()
		mockMemberRepo.On("GetMember", ctx, int32(7), int32(3)).
			Return(&domain.DepartmentMember{ID: 99, UserID: 7, DepartmentID: 3}, nil).Once()
		mockPaymentRepo.On("MarkMatched", ctx, int32(1), int32(3), int32(7), "").Return(true, nil).Once()

		payment, err := svc.MatchByIdentity(ctx, 1, 10, 3, 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusMatched, payment.Status)
		assert.Equal(t, int32(3), *payment.DepartmentID)
		assert.Equal(t, int32(7), *payment.UserID)
		mockPaymentRepo.AssertExpectations(t)
		mockMemberRepo.AssertExpectations(t)
	})

	t.Run("WrongOrgReadsAsNotFound", func(t *testing.T) {
		mockPaymentRepo := new(MockPaymentRepo)
		mockMemberRepo := new(MockMemberRepo)
		svc := service.NewPaymentMatchingService(mockPaymentRepo, mockMemberRepo)

		mockPaymentRepo.On("GetByID", ctx, int32(1)).Return(unmatchedPayment(1, 10), nil).Once()

		_, err := svc.MatchByIdentity(ctx, 1, 99, 3, 7)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})

	t.Run("AlreadyMatched", func(t *testing.T) {
		mockPaymentRepo := new(MockPaymentRepo)
		mockMemberRepo := new(MockMemberRepo)
		svc := service.NewPaymentMatchingService(mockPaymentRepo, mockMemberRepo)

		matched := unmatchedPayment(1, 10)
		matched.Status = domain.PaymentStatusMatched
		mockPaymentRepo.On("GetByID", ctx, int32(1)).Return(matched, nil).Once()

		_, err := svc.MatchByIdentity(ctx, 1, 10, 3, 7)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	})

	t.Run("NonMember", func(t *testing.T) {
		mockPaymentRepo := new(MockPaymentRepo)
		mockMemberRepo := new(MockMemberRepo)
		svc := service.NewPaymentMatchingService(mockPaymentRepo, mockMemberRepo)

		mockPaymentRepo.On("GetByID", ctx, int32(1)).Return(unmatchedPayment(1, 10), nil).Once()
		mockMemberRepo.On("GetMember", ctx, int32(7), int32(3)).
			Return(nil, domain.E(domain.KindNotFound, "member not found")).Once()

		_, err := svc.MatchByIdentity(ctx, 1, 10, 3, 7)
		assert.True(t, domain.IsKind(err, domain.KindNotMember))
	})

	t.Run("LostRaceToConcurrentMatch", func(t *testing.T) {
		mockPaymentRepo := new(MockPaymentRepo)
		mockMemberRepo := new(MockMemberRepo)
		svc := service.NewPaymentMatchingService(mockPaymentRepo, mockMemberRepo)

		mockPaymentRepo.On("GetByID", ctx, int32(1)).Return(unmatchedPayment(1, 10), nil).Once()
		mockMemberRepo.On("GetMember", ctx, int32(7), int32(3)).
			Return(&domain.DepartmentMember{UserID: 7, DepartmentID: 3}, nil).Once()
		mockPaymentRepo.On("MarkMatched", ctx, int32(1), int32(3), int32(7), "").Return(false, nil).Once()

		_, err := svc.MatchByIdentity(ctx, 1, 10, 3, 7)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	})
}

func TestPaymentMatchingService_MatchByReference(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockPaymentRepo := new(MockPaymentRepo)
		mockMemberRepo := new(MockMemberRepo)
		svc := service.NewPaymentMatchingService(mockPaymentRepo, mockMemberRepo)

		mockPaymentRepo.On("GetByID", ctx, int32(1)).Return(unmatchedPayment(1, 10), nil).Once()
		mockMemberRepo.On("GetMemberByReference", ctx, int32(3), "REF-ABC123").
			Return(&domain.DepartmentMember{UserID: 7, DepartmentID: 3, PaymentReference: "REF-ABC123"}, nil).Once()
		mockPaymentRepo.On("MarkMatched", ctx, int32(1), int32(3), int32(7), "REF-ABC123").Return(true, nil).Once()

		payment, err := svc.MatchByReference(ctx, 1, 10, 3, "REF-ABC123")
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusMatched, payment.Status)
		assert.Equal(t, "REF-ABC123", payment.Reference)
		mockPaymentRepo.AssertExpectations(t)
	})

	t.Run("UnknownReference", func(t *testing.T) {
		mockPaymentRepo := new(MockPaymentRepo)
		mockMemberRepo := new(MockMemberRepo)
		svc := service.NewPaymentMatchingService(mockPaymentRepo, mockMemberRepo)

		mockPaymentRepo.On("GetByID", ctx, int32(1)).Return(unmatchedPayment(1, 10), nil).Once()
		mockMemberRepo.On("GetMemberByReference", ctx, int32(3), "REF-NOPE00").
			Return(nil, domain.E(domain.KindNotFound, "member not found")).Once()

		_, err := svc.MatchByReference(ctx, 1, 10, 3, "REF-NOPE00")
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestPaymentMatchingService_Unmatch(t *testing.T) {
	ctx := context.Background()

	t.Run("RevertsClaimedPayment", func(t *testing.T) {
		mockPaymentRepo := new(MockPaymentRepo)
		mockMemberRepo := new(MockMemberRepo)
		svc := service.NewPaymentMatchingService(mockPaymentRepo, mockMemberRepo)

		deptID, userID := int32(3), int32(7)
		claimed := &domain.Payment{
			ID: 1, OrgID: 10, Status: domain.PaymentStatusClaimed,
			DepartmentID: &deptID, UserID: &userID,
		}
		mockPaymentRepo.On("GetByID", ctx, int32(1)).Return(claimed, nil).Once()
		mockPaymentRepo.On("ResetUnmatched", ctx, int32(1)).Return(nil).Once()

		payment, err := svc.Unmatch(ctx, 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusUnmatched, payment.Status)
		assert.Nil(t, payment.DepartmentID)
		assert.Nil(t, payment.UserID)
		mockPaymentRepo.AssertExpectations(t)
	})
}

func TestPaymentMatchingService_ListUnmatched(t *testing.T) {
	ctx := context.Background()

	t.Run("NormalizesPaging", func(t *testing.T) {
		mockPaymentRepo := new(MockPaymentRepo)
		mockMemberRepo := new(MockMemberRepo)
		svc := service.NewPaymentMatchingService(mockPaymentRepo, mockMemberRepo)

		mockPaymentRepo.On("ListUnmatched", ctx, int32(10), int32(1), int32(20)).
			Return([]domain.Payment{*unmatchedPayment(1, 10)}, int32(1), nil).Once()

		payments, total, err := svc.ListUnmatched(ctx, 10, 0, 500)
		assert.NoError(t, err)
		assert.Len(t, payments, 1)
		assert.Equal(t, int32(1), total)
		mockPaymentRepo.AssertExpectations(t)
	})
}
