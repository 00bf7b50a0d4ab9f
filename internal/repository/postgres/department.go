package postgres

import (
	"context"
	"database/sql"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type departmentRepository struct {
	db *sql.DB
}

func NewDepartmentRepository(db *sql.DB) repository.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) GetByID(ctx context.Context, id int32) (*domain.Department, error) {
	d := &domain.Department{}
	query := `SELECT id, org_id, name, monthly_contribution, created_on FROM departments WHERE id = $1`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.OrgID, &d.Name, &d.MonthlyContribution, &d.CreatedOn)
	if err != nil {
		return nil, notFound(err, "department not found")
	}
	return d, nil
}

func (r *departmentRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.Department, error) {
	query := `SELECT id, org_id, name, monthly_contribution, created_on FROM departments WHERE org_id = $1 ORDER BY id`
	return r.list(ctx, query, orgID)
}

func (r *departmentRepository) ListAll(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT id, org_id, name, monthly_contribution, created_on FROM departments ORDER BY id`
	return r.list(ctx, query)
}

func (r *departmentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Department, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.OrgID, &d.Name, &d.MonthlyContribution, &d.CreatedOn); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}
