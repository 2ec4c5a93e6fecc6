package repositories

import (
	"context"
	"database/sql"
	"time"

	"tcontrol/internal/models"
)

// SweepStore opens the unit of work for one deadline-check cycle. Every
// read and write of the cycle goes through the same SweepTx, so either the
// whole cycle commits or none of it does.
type SweepStore interface {
	Begin(ctx context.Context) (SweepTx, error)
}

// SweepTx is one sweep cycle's transaction over the task store and both logs.
type SweepTx interface {
	// FindOverdueCandidates returns tasks with a due date in the past
	// (relative to the given now) whose status is neither done nor overdue,
	// with the owning org resolved through the transaction up front.
	FindOverdueCandidates(ctx context.Context, now time.Time) ([]models.OverdueCandidate, error)
	// MarkOverdue flips the status to overdue only if the row still holds
	// the status it had when read. ErrConflict means another writer got
	// there first and the row must be skipped.
	MarkOverdue(ctx context.Context, taskID int64, from models.TaskStatus) error
	AppendEventLog(ctx context.Context, entry *models.EventLogEntry) error
	AppendAuditEvent(ctx context.Context, event *models.AuditEvent) error
	Commit() error
	Rollback() error
}

type sweepStore struct {
	db *sql.DB
}

func NewSweepStore(db *sql.DB) SweepStore {
	return &sweepStore{db: db}
}

func (s *sweepStore) Begin(ctx context.Context) (SweepTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sweepTx{tx: tx}, nil
}

type sweepTx struct {
	tx *sql.Tx
}

func (s *sweepTx) FindOverdueCandidates(ctx context.Context, now time.Time) ([]models.OverdueCandidate, error) {
	const q = `
		SELECT t.id, t.transaction_id, t.title, t.description, t.status,
		       t.assignee_id, t.due_at, t.created_at, t.updated_at,
		       tr.org_id
		FROM tasks t
		JOIN transactions tr ON tr.id = t.transaction_id
		WHERE t.due_at IS NOT NULL
		  AND t.due_at < $1
		  AND t.status NOT IN ($2, $3)
		ORDER BY t.due_at ASC, t.id ASC`
	rows, err := s.tx.QueryContext(ctx, q, now, models.StatusDone, models.StatusOverdue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OverdueCandidate
	for rows.Next() {
		var c models.OverdueCandidate
		if err := rows.Scan(
			&c.Task.ID, &c.Task.TransactionID, &c.Task.Title, &c.Task.Description,
			&c.Task.Status, &c.Task.AssigneeID, &c.Task.DueAt,
			&c.Task.CreatedAt, &c.Task.UpdatedAt,
			&c.OrgID,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *sweepTx) MarkOverdue(ctx context.Context, taskID int64, from models.TaskStatus) error {
	// Условный апдейт: только поле status. Конкурентные изменения других
	// полей не затираются.
	res, err := s.tx.ExecContext(ctx,
		`UPDATE tasks SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`,
		models.StatusOverdue, taskID, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

func (s *sweepTx) AppendEventLog(ctx context.Context, entry *models.EventLogEntry) error {
	return s.tx.QueryRowContext(ctx, insertEventLogSQL,
		entry.TransactionID, entry.EventType, entry.EntityType, entry.EntityID, entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (s *sweepTx) AppendAuditEvent(ctx context.Context, event *models.AuditEvent) error {
	return s.tx.QueryRowContext(ctx, insertAuditEventSQL,
		event.OrgID, event.ActorID, event.Action, event.EntityType, event.EntityID, event.Detail,
	).Scan(&event.ID, &event.CreatedAt)
}

func (s *sweepTx) Commit() error {
	return s.tx.Commit()
}

func (s *sweepTx) Rollback() error {
	return s.tx.Rollback()
}
