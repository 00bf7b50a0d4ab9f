package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type withdrawalRepository struct {
	db *sql.DB
}

func NewWithdrawalRepository(db *sql.DB) repository.WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

func (r *withdrawalRepository) Create(ctx context.Context, w *domain.Withdrawal) error {
	query := `INSERT INTO withdrawals (department_id, creator_id, amount, reason, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on, updated_on`
	if w.Status == "" {
		w.Status = domain.WithdrawalStatusPendingApproval
	}
	now := time.Now()
	return querier(ctx, r.db).QueryRowContext(ctx, query,
		w.DepartmentID, w.CreatorID, w.Amount, w.Reason, w.Status, now, now).
		Scan(&w.ID, &w.CreatedOn, &w.UpdatedOn)
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id int32) (*domain.Withdrawal, error) {
	w := &domain.Withdrawal{}
	query := `SELECT id, department_id, creator_id, amount, reason, status, created_on, updated_on FROM withdrawals WHERE id = $1`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, id).
		Scan(&w.ID, &w.DepartmentID, &w.CreatorID, &w.Amount, &w.Reason, &w.Status, &w.CreatedOn, &w.UpdatedOn)
	if err != nil {
		return nil, notFound(err, "withdrawal not found")
	}
	return w, nil
}

func (r *withdrawalRepository) ListByDepartment(ctx context.Context, departmentID int32, status domain.WithdrawalStatus) ([]domain.Withdrawal, error) {
	query := `SELECT id, department_id, creator_id, amount, reason, status, created_on, updated_on
	          FROM withdrawals WHERE department_id = $1`
	args := []any{departmentID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_on DESC`

	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		if err := rows.Scan(&w.ID, &w.DepartmentID, &w.CreatorID, &w.Amount, &w.Reason, &w.Status, &w.CreatedOn, &w.UpdatedOn); err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}

func (r *withdrawalRepository) UpdateStatus(ctx context.Context, id int32, to domain.WithdrawalStatus, allowedFrom ...domain.WithdrawalStatus) (bool, error) {
	placeholders := make([]string, len(allowedFrom))
	args := []any{to, time.Now(), id}
	for i, from := range allowedFrom {
		placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
		args = append(args, from)
	}
	query := fmt.Sprintf(`UPDATE withdrawals SET status = $1, updated_on = $2 WHERE id = $3 AND status IN (%s)`,
		strings.Join(placeholders, ", "))

	res, err := querier(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
