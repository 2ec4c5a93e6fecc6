package repositories

import (
	"context"
	"database/sql"

	"tcontrol/internal/models"
)

// insertEventLogSQL is shared with the sweep transaction.
const insertEventLogSQL = `
	INSERT INTO event_logs (transaction_id, event_type, entity_type, entity_id, detail)
	VALUES ($1,$2,$3,$4,$5)
	RETURNING id, created_at`

type EventLogRepository interface {
	Store(ctx context.Context, entry *models.EventLogEntry) error
	ListByTransaction(ctx context.Context, transactionID int64) ([]models.EventLogEntry, error)
}

type eventLogRepository struct {
	db *sql.DB
}

func NewEventLogRepository(db *sql.DB) EventLogRepository {
	return &eventLogRepository{db: db}
}

func (r *eventLogRepository) Store(ctx context.Context, entry *models.EventLogEntry) error {
	return r.db.QueryRowContext(ctx, insertEventLogSQL,
		entry.TransactionID, entry.EventType, entry.EntityType, entry.EntityID, entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *eventLogRepository) ListByTransaction(ctx context.Context, transactionID int64) ([]models.EventLogEntry, error) {
	const q = `SELECT id, transaction_id, event_type, entity_type, entity_id, detail, created_at
		FROM event_logs
		WHERE transaction_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EventLogEntry
	for rows.Next() {
		var e models.EventLogEntry
		if err := rows.Scan(
			&e.ID, &e.TransactionID, &e.EventType, &e.EntityType, &e.EntityID,
			&e.Detail, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
