package postgres

import (
	"context"
	"database/sql"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, org_id, amount, COALESCE(reference, ''), COALESCE(account_number, ''), status, department_id, user_id, transaction_date, created_on`

func scanPayment(row interface{ Scan(...any) error }, p *domain.Payment) error {
	return row.Scan(&p.ID, &p.OrgID, &p.Amount, &p.Reference, &p.AccountNumber, &p.Status, &p.DepartmentID, &p.UserID, &p.TransactionDate, &p.CreatedOn)
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (org_id, amount, reference, account_number, status, department_id, user_id, transaction_date, created_on)
	          VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9) RETURNING id`
	if p.Status == "" {
		p.Status = domain.PaymentStatusUnmatched
	}
	return querier(ctx, r.db).QueryRowContext(ctx, query,
		p.OrgID, p.Amount, p.Reference, p.AccountNumber, p.Status, p.DepartmentID, p.UserID, p.TransactionDate, time.Now()).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	if err := scanPayment(querier(ctx, r.db).QueryRowContext(ctx, query, id), p); err != nil {
		return nil, notFound(err, "payment not found")
	}
	return p, nil
}

func (r *paymentRepository) ListUnmatched(ctx context.Context, orgID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM payments WHERE org_id = $1 AND status = $2`
	if err := querier(ctx, r.db).QueryRowContext(ctx, countQuery, orgID, domain.PaymentStatusUnmatched).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE org_id = $1 AND status = $2
	          ORDER BY transaction_date DESC LIMIT $3 OFFSET $4`
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, orgID, domain.PaymentStatusUnmatched, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, count, rows.Err()
}

func (r *paymentRepository) MarkMatched(ctx context.Context, paymentID, departmentID, userID int32, reference string) (bool, error) {
	query := `UPDATE payments SET status = $1, department_id = $2, user_id = $3, reference = COALESCE(NULLIF($4, ''), reference)
	          WHERE id = $5 AND status = $6`
	res, err := querier(ctx, r.db).ExecContext(ctx, query,
		domain.PaymentStatusMatched, departmentID, userID, reference, paymentID, domain.PaymentStatusUnmatched)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *paymentRepository) MarkClaimed(ctx context.Context, paymentID, departmentID, userID int32) error {
	query := `UPDATE payments SET status = $1, department_id = $2, user_id = $3 WHERE id = $4`
	_, err := querier(ctx, r.db).ExecContext(ctx, query, domain.PaymentStatusClaimed, departmentID, userID, paymentID)
	return err
}

func (r *paymentRepository) ResetUnmatched(ctx context.Context, paymentID int32) error {
	query := `UPDATE payments SET status = $1, department_id = NULL, user_id = NULL WHERE id = $2`
	_, err := querier(ctx, r.db).ExecContext(ctx, query, domain.PaymentStatusUnmatched, paymentID)
	return err
}

func (r *paymentRepository) SumContributions(ctx context.Context, departmentID, userID int32, asOf time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments
	          WHERE department_id = $1 AND user_id = $2 AND status IN ($3, $4) AND transaction_date <= $5`
	err := querier(ctx, r.db).QueryRowContext(ctx, query,
		departmentID, userID, domain.PaymentStatusMatched, domain.PaymentStatusClaimed, asOf).Scan(&total)
	return total, err
}
