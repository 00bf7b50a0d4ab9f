package service_test

import (
	"context"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/security"
	"fundledger-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListUnmatched(ctx context.Context, orgID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, orgID, page, pageSize)
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}
func (m *MockPaymentRepo) MarkMatched(ctx context.Context, paymentID, departmentID, userID int32, reference string) (bool, error) {
	args := m.Called(ctx, paymentID, departmentID, userID, reference)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentRepo) MarkClaimed(ctx context.Context, paymentID, departmentID, userID int32) error {
	args := m.Called(ctx, paymentID, departmentID, userID)
	return args.Error(0)
}
func (m *MockPaymentRepo) ResetUnmatched(ctx context.Context, paymentID int32) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}
func (m *MockPaymentRepo) SumContributions(ctx context.Context, departmentID, userID int32, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, departmentID, userID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) CreateMember(ctx context.Context, member *domain.DepartmentMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetMember(ctx context.Context, userID, departmentID int32) (*domain.DepartmentMember, error) {
	args := m.Called(ctx, userID, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepartmentMember), args.Error(1)
}
func (m *MockMemberRepo) GetMemberByReference(ctx context.Context, departmentID int32, reference string) (*domain.DepartmentMember, error) {
	args := m.Called(ctx, departmentID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepartmentMember), args.Error(1)
}
func (m *MockMemberRepo) ListMembers(ctx context.Context, departmentID int32) ([]domain.DepartmentMember, error) {
	args := m.Called(ctx, departmentID)
	return args.Get(0).([]domain.DepartmentMember), args.Error(1)
}
func (m *MockMemberRepo) ReferenceExists(ctx context.Context, departmentID int32, reference string) (bool, error) {
	args := m.Called(ctx, departmentID, reference)
	return args.Bool(0), args.Error(1)
}
func (m *MockMemberRepo) CreateOrgMembership(ctx context.Context, membership *domain.OrgMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}
func (m *MockMemberRepo) GetOrgMembership(ctx context.Context, userID, orgID int32) (*domain.OrgMembership, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgMembership), args.Error(1)
}

// MockDepartmentRepo
type MockDepartmentRepo struct {
	mock.Mock
}

func (m *MockDepartmentRepo) GetByID(ctx context.Context, id int32) (*domain.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}
func (m *MockDepartmentRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.Department, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Department), args.Error(1)
}
func (m *MockDepartmentRepo) ListAll(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Department), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockClaimRepo
type MockClaimRepo struct {
	mock.Mock
}

func (m *MockClaimRepo) Create(ctx context.Context, c *domain.PaymentClaim) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockClaimRepo) GetByID(ctx context.Context, id int32) (*domain.PaymentClaim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentClaim), args.Error(1)
}
func (m *MockClaimRepo) GetByPaymentID(ctx context.Context, paymentID int32) (*domain.PaymentClaim, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentClaim), args.Error(1)
}
func (m *MockClaimRepo) ListByDepartment(ctx context.Context, departmentID int32, status domain.ClaimStatus) ([]domain.PaymentClaim, error) {
	args := m.Called(ctx, departmentID, status)
	return args.Get(0).([]domain.PaymentClaim), args.Error(1)
}
func (m *MockClaimRepo) MarkReviewed(ctx context.Context, claimID int32, status domain.ClaimStatus, reviewerID int32, details string, reviewedOn time.Time) (bool, error) {
	args := m.Called(ctx, claimID, status, reviewerID, details, reviewedOn)
	return args.Bool(0), args.Error(1)
}

// MockWithdrawalRepo
type MockWithdrawalRepo struct {
	mock.Mock
}

func (m *MockWithdrawalRepo) Create(ctx context.Context, w *domain.Withdrawal) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockWithdrawalRepo) GetByID(ctx context.Context, id int32) (*domain.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}
func (m *MockWithdrawalRepo) ListByDepartment(ctx context.Context, departmentID int32, status domain.WithdrawalStatus) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, departmentID, status)
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}
func (m *MockWithdrawalRepo) UpdateStatus(ctx context.Context, id int32, to domain.WithdrawalStatus, allowedFrom ...domain.WithdrawalStatus) (bool, error) {
	callArgs := []interface{}{ctx, id, to}
	for _, from := range allowedFrom {
		callArgs = append(callArgs, from)
	}
	args := m.Called(callArgs...)
	return args.Bool(0), args.Error(1)
}

// MockOTPRepo
type MockOTPRepo struct {
	mock.Mock
}

func (m *MockOTPRepo) Create(ctx context.Context, otp *domain.WithdrawalOTP) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}
func (m *MockOTPRepo) GetUnused(ctx context.Context, withdrawalID, userID int32) (*domain.WithdrawalOTP, error) {
	args := m.Called(ctx, withdrawalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalOTP), args.Error(1)
}
func (m *MockOTPRepo) MarkUsed(ctx context.Context, otpID int32) error {
	args := m.Called(ctx, otpID)
	return args.Error(0)
}
func (m *MockOTPRepo) InvalidateAll(ctx context.Context, withdrawalID, userID int32) error {
	args := m.Called(ctx, withdrawalID, userID)
	return args.Error(0)
}

// MockInviteRepo
type MockInviteRepo struct {
	mock.Mock
}

func (m *MockInviteRepo) Create(ctx context.Context, link *domain.InviteLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}
func (m *MockInviteRepo) GetByCode(ctx context.Context, code string) (*domain.InviteLink, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteLink), args.Error(1)
}
func (m *MockInviteRepo) ConsumeUse(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockInviteRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Append(ctx context.Context, event *domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// fakeTxManager runs the function inline without a database.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingAudit captures actions so tests can assert what was audited
// without caring about full event payloads.
type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) Record(_ context.Context, _, _ int32, action, _ string, _ int32, _ string) {
	a.actions = append(a.actions, action)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOTP(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}
func (m *MockNotifier) SendWithdrawalApproved(ctx context.Context, email string, amount decimal.Decimal, reason string) error {
	args := m.Called(ctx, email, amount, reason)
	return args.Error(0)
}
func (m *MockNotifier) SendInvite(ctx context.Context, email, code, url string) error {
	args := m.Called(ctx, email, code, url)
	return args.Error(0)
}
func (m *MockNotifier) SendYearSummary(ctx context.Context, email string, year int, result domain.CarryForwardResult) error {
	args := m.Called(ctx, email, year, result)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int32, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateRefreshToken(userID int32, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}

// MockReferenceService
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) GenerateReference(ctx context.Context, departmentID int32) (string, error) {
	args := m.Called(ctx, departmentID)
	return args.String(0), args.Error(1)
}

var _ service.ReferenceService = (*MockReferenceService)(nil)
var _ service.Notifier = (*MockNotifier)(nil)
var _ service.AuditService = (*recordingAudit)(nil)
