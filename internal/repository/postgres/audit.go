package postgres

import (
	"context"
	"database/sql"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, event *domain.AuditEvent) error {
	query := `INSERT INTO audit_events (org_id, user_id, action, resource_type, resource_id, details, created_on)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7) RETURNING id`
	return querier(ctx, r.db).QueryRowContext(ctx, query,
		event.OrgID, event.UserID, event.Action, event.ResourceType, event.ResourceID, event.Details, time.Now()).
		Scan(&event.ID)
}
