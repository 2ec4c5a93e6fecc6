package repositories

import (
	"context"
	"database/sql"

	"tcontrol/internal/models"
)

type TimelineRepository interface {
	Store(ctx context.Context, item *models.TimelineItem) error
	ListByTransaction(ctx context.Context, transactionID int64) ([]models.TimelineItem, error)
}

type timelineRepository struct {
	db *sql.DB
}

func NewTimelineRepository(db *sql.DB) TimelineRepository {
	return &timelineRepository{db: db}
}

func (r *timelineRepository) Store(ctx context.Context, item *models.TimelineItem) error {
	const q = `
		INSERT INTO timeline_items (transaction_id, label, description, due_at, completed_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		item.TransactionID, item.Label, item.Description, item.DueAt, item.CompletedAt,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *timelineRepository) ListByTransaction(ctx context.Context, transactionID int64) ([]models.TimelineItem, error) {
	const q = `SELECT id, transaction_id, label, description, due_at, completed_at, created_at
		FROM timeline_items
		WHERE transaction_id = $1
		ORDER BY due_at ASC NULLS LAST, id ASC`
	rows, err := r.db.QueryContext(ctx, q, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TimelineItem
	for rows.Next() {
		var it models.TimelineItem
		if err := rows.Scan(
			&it.ID, &it.TransactionID, &it.Label, &it.Description,
			&it.DueAt, &it.CompletedAt, &it.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
