package postgres

import (
	"context"
	"database/sql"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type inviteRepository struct {
	db *sql.DB
}

func NewInviteRepository(db *sql.DB) repository.InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) Create(ctx context.Context, link *domain.InviteLink) error {
	query := `INSERT INTO invite_links (code, department_id, created_by, expires_on, max_uses, used_count, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5, 0, true, $6) RETURNING id, created_on`
	err := querier(ctx, r.db).QueryRowContext(ctx, query,
		link.Code, link.DepartmentID, link.CreatedBy, link.ExpiresOn, link.MaxUses, time.Now()).
		Scan(&link.ID, &link.CreatedOn)
	if isUniqueViolation(err) {
		return domain.E(domain.KindConflict, "invite code already exists")
	}
	if err == nil {
		link.IsActive = true
		link.UsedCount = 0
	}
	return err
}

func (r *inviteRepository) GetByCode(ctx context.Context, code string) (*domain.InviteLink, error) {
	link := &domain.InviteLink{}
	query := `SELECT id, code, department_id, created_by, expires_on, max_uses, used_count, is_active, created_on
	          FROM invite_links WHERE code = $1`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, code).
		Scan(&link.ID, &link.Code, &link.DepartmentID, &link.CreatedBy, &link.ExpiresOn, &link.MaxUses, &link.UsedCount, &link.IsActive, &link.CreatedOn)
	if err != nil {
		return nil, notFound(err, "invite link not found")
	}
	return link, nil
}

// ConsumeUse increments used_count and deactivates the link in the same
// statement when the increment reaches max_uses. The WHERE clause keeps the
// increment conditional so two redemptions of the last use cannot both win.
func (r *inviteRepository) ConsumeUse(ctx context.Context, id int32) (bool, error) {
	query := `UPDATE invite_links
	          SET used_count = used_count + 1,
	              is_active = CASE WHEN max_uses IS NOT NULL AND used_count + 1 >= max_uses THEN false ELSE is_active END
	          WHERE id = $1 AND is_active = true AND (max_uses IS NULL OR used_count < max_uses)`
	res, err := querier(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *inviteRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE invite_links SET is_active = false WHERE is_active = true AND expires_on IS NOT NULL AND expires_on < $1`
	res, err := querier(ctx, r.db).ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
