package repositories

import (
	"context"
	"database/sql"

	"tcontrol/internal/models"
)

// insertAuditEventSQL is shared with the sweep transaction.
const insertAuditEventSQL = `
	INSERT INTO audit_events (org_id, actor_id, action, entity_type, entity_id, detail)
	VALUES ($1,$2,$3,$4,$5,$6)
	RETURNING id, created_at`

type AuditRepository interface {
	Store(ctx context.Context, event *models.AuditEvent) error
	// ListForTransaction returns audit events whose entity is the transaction
	// itself or any of its tasks, newest first.
	ListForTransaction(ctx context.Context, transactionID int64) ([]models.AuditEvent, error)
}

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Store(ctx context.Context, event *models.AuditEvent) error {
	return r.db.QueryRowContext(ctx, insertAuditEventSQL,
		event.OrgID, event.ActorID, event.Action, event.EntityType, event.EntityID, event.Detail,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *auditRepository) ListForTransaction(ctx context.Context, transactionID int64) ([]models.AuditEvent, error) {
	const q = `SELECT id, org_id, actor_id, action, entity_type, entity_id, detail, created_at
		FROM audit_events
		WHERE (entity_type = 'transaction' AND entity_id = $1)
		   OR (entity_type = 'task' AND entity_id IN (SELECT id FROM tasks WHERE transaction_id = $1))
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AuditEvent
	for rows.Next() {
		var e models.AuditEvent
		if err := rows.Scan(
			&e.ID, &e.OrgID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID,
			&e.Detail, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
