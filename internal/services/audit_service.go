package services

import (
	"context"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

// AuditService is the read surface over the append-only logs. Writes for
// the overdue transition happen inside the sweep's transaction, not here.
type AuditService interface {
	Append(ctx context.Context, event *models.AuditEvent) error
	ListForTransaction(ctx context.Context, transactionID int64) ([]models.AuditEvent, error)
	ListEvents(ctx context.Context, transactionID int64) ([]models.EventLogEntry, error)
}

type auditService struct {
	audit  repositories.AuditRepository
	events repositories.EventLogRepository
}

func NewAuditService(audit repositories.AuditRepository, events repositories.EventLogRepository) AuditService {
	return &auditService{audit: audit, events: events}
}

func (s *auditService) Append(ctx context.Context, event *models.AuditEvent) error {
	return s.audit.Store(ctx, event)
}

func (s *auditService) ListForTransaction(ctx context.Context, transactionID int64) ([]models.AuditEvent, error) {
	return s.audit.ListForTransaction(ctx, transactionID)
}

func (s *auditService) ListEvents(ctx context.Context, transactionID int64) ([]models.EventLogEntry, error) {
	return s.events.ListByTransaction(ctx, transactionID)
}
