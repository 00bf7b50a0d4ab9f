package postgres

import (
	"context"
	"database/sql"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type claimRepository struct {
	db *sql.DB
}

func NewClaimRepository(db *sql.DB) repository.ClaimRepository {
	return &claimRepository{db: db}
}

const claimColumns = `id, payment_id, user_id, department_id, transaction_code, COALESCE(details, ''), status, submitted_on, reviewed_on, approved_by`

func (r *claimRepository) Create(ctx context.Context, c *domain.PaymentClaim) error {
	query := `INSERT INTO payment_claims (payment_id, user_id, department_id, transaction_code, details, status, submitted_on)
	          VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7) RETURNING id, submitted_on`
	if c.Status == "" {
		c.Status = domain.ClaimStatusPending
	}
	err := querier(ctx, r.db).QueryRowContext(ctx, query,
		c.PaymentID, c.UserID, c.DepartmentID, c.TransactionCode, c.Details, c.Status, time.Now()).
		Scan(&c.ID, &c.SubmittedOn)
	if isUniqueViolation(err) {
		return domain.E(domain.KindConflict, "a claim already exists for this payment")
	}
	return err
}

func (r *claimRepository) GetByID(ctx context.Context, id int32) (*domain.PaymentClaim, error) {
	c := &domain.PaymentClaim{}
	query := `SELECT ` + claimColumns + ` FROM payment_claims WHERE id = $1`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.PaymentID, &c.UserID, &c.DepartmentID, &c.TransactionCode, &c.Details, &c.Status, &c.SubmittedOn, &c.ReviewedOn, &c.ApprovedBy)
	if err != nil {
		return nil, notFound(err, "claim not found")
	}
	return c, nil
}

func (r *claimRepository) GetByPaymentID(ctx context.Context, paymentID int32) (*domain.PaymentClaim, error) {
	c := &domain.PaymentClaim{}
	query := `SELECT ` + claimColumns + ` FROM payment_claims WHERE payment_id = $1`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, paymentID).
		Scan(&c.ID, &c.PaymentID, &c.UserID, &c.DepartmentID, &c.TransactionCode, &c.Details, &c.Status, &c.SubmittedOn, &c.ReviewedOn, &c.ApprovedBy)
	if err != nil {
		return nil, notFound(err, "claim not found")
	}
	return c, nil
}

func (r *claimRepository) ListByDepartment(ctx context.Context, departmentID int32, status domain.ClaimStatus) ([]domain.PaymentClaim, error) {
	query := `SELECT ` + claimColumns + ` FROM payment_claims WHERE department_id = $1`
	args := []any{departmentID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY submitted_on DESC`

	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.PaymentClaim
	for rows.Next() {
		var c domain.PaymentClaim
		if err := rows.Scan(&c.ID, &c.PaymentID, &c.UserID, &c.DepartmentID, &c.TransactionCode, &c.Details, &c.Status, &c.SubmittedOn, &c.ReviewedOn, &c.ApprovedBy); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

func (r *claimRepository) MarkReviewed(ctx context.Context, claimID int32, status domain.ClaimStatus, reviewerID int32, details string, reviewedOn time.Time) (bool, error) {
	query := `UPDATE payment_claims SET status = $1, approved_by = $2, details = NULLIF($3, ''), reviewed_on = $4
	          WHERE id = $5 AND status = $6`
	res, err := querier(ctx, r.db).ExecContext(ctx, query, status, reviewerID, details, reviewedOn, claimID, domain.ClaimStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
