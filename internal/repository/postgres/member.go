package postgres

import (
	"context"
	"database/sql"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) CreateMember(ctx context.Context, m *domain.DepartmentMember) error {
	query := `INSERT INTO department_members (user_id, department_id, role, payment_reference, joined_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, m.UserID, m.DepartmentID, m.Role, m.PaymentReference, time.Now()).Scan(&m.ID)
	if isUniqueViolation(err) {
		return domain.E(domain.KindConflict, "user is already a member of this department")
	}
	return err
}

func (r *memberRepository) GetMember(ctx context.Context, userID, departmentID int32) (*domain.DepartmentMember, error) {
	m := &domain.DepartmentMember{}
	query := `SELECT id, user_id, department_id, role, payment_reference, joined_on
	          FROM department_members WHERE user_id = $1 AND department_id = $2`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, userID, departmentID).
		Scan(&m.ID, &m.UserID, &m.DepartmentID, &m.Role, &m.PaymentReference, &m.JoinedOn)
	if err != nil {
		return nil, notFound(err, "department member not found")
	}
	return m, nil
}

func (r *memberRepository) GetMemberByReference(ctx context.Context, departmentID int32, reference string) (*domain.DepartmentMember, error) {
	m := &domain.DepartmentMember{}
	query := `SELECT id, user_id, department_id, role, payment_reference, joined_on
	          FROM department_members WHERE department_id = $1 AND payment_reference = $2`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, departmentID, reference).
		Scan(&m.ID, &m.UserID, &m.DepartmentID, &m.Role, &m.PaymentReference, &m.JoinedOn)
	if err != nil {
		return nil, notFound(err, "no member with that payment reference")
	}
	return m, nil
}

func (r *memberRepository) ListMembers(ctx context.Context, departmentID int32) ([]domain.DepartmentMember, error) {
	query := `SELECT id, user_id, department_id, role, payment_reference, joined_on
	          FROM department_members WHERE department_id = $1 ORDER BY joined_on`
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.DepartmentMember
	for rows.Next() {
		var m domain.DepartmentMember
		if err := rows.Scan(&m.ID, &m.UserID, &m.DepartmentID, &m.Role, &m.PaymentReference, &m.JoinedOn); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) ReferenceExists(ctx context.Context, departmentID int32, reference string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM department_members WHERE department_id = $1 AND payment_reference = $2)`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, departmentID, reference).Scan(&exists)
	return exists, err
}

func (r *memberRepository) CreateOrgMembership(ctx context.Context, m *domain.OrgMembership) error {
	query := `INSERT INTO org_memberships (user_id, org_id, role, joined_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, m.UserID, m.OrgID, m.Role, time.Now()).Scan(&m.ID)
	if isUniqueViolation(err) {
		return domain.E(domain.KindConflict, "user is already a member of this organization")
	}
	return err
}

func (r *memberRepository) GetOrgMembership(ctx context.Context, userID, orgID int32) (*domain.OrgMembership, error) {
	m := &domain.OrgMembership{}
	query := `SELECT id, user_id, org_id, role, joined_on FROM org_memberships WHERE user_id = $1 AND org_id = $2`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, userID, orgID).
		Scan(&m.ID, &m.UserID, &m.OrgID, &m.Role, &m.JoinedOn)
	if err != nil {
		return nil, notFound(err, "organization membership not found")
	}
	return m, nil
}
