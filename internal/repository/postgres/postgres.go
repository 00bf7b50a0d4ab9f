package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"

	"github.com/lib/pq"
)

// Store aggregates all postgres-backed repositories behind one value.
type Store struct {
	db *sql.DB
	repository.PaymentRepository
	repository.MemberRepository
	repository.DepartmentRepository
	repository.UserRepository
	repository.ClaimRepository
	repository.WithdrawalRepository
	repository.OTPRepository
	repository.InviteRepository
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		PaymentRepository:    NewPaymentRepository(db),
		MemberRepository:     NewMemberRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		UserRepository:       NewUserRepository(db),
		ClaimRepository:      NewClaimRepository(db),
		WithdrawalRepository: NewWithdrawalRepository(db),
		OTPRepository:        NewOTPRepository(db),
		InviteRepository:     NewInviteRepository(db),
		AuditRepository:      NewAuditRepository(db),
	}
}

// dbtx is satisfied by both *sql.DB and *sql.Tx so repositories run against
// whichever the context carries.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

func querier(ctx context.Context, db *sql.DB) dbtx {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

func notFound(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.E(domain.KindNotFound, message)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
