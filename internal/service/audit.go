package service

import (
	"context"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/logger"
	"fundledger-backend/internal/repository"
)

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// Record appends an audit event. Failures are logged and swallowed: an
// audit write must never fail the state transition that emitted it.
func (s *auditService) Record(ctx context.Context, orgID, userID int32, action, resourceType string, resourceID int32, details string) {
	event := &domain.AuditEvent{
		OrgID:        orgID,
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	}
	if err := s.auditRepo.Append(ctx, event); err != nil {
		logger.Warn("failed to append audit event", "action", action, "resource_type", resourceType, "resource_id", resourceID, "error", err)
	}
}
