package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tcontrol/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	// UpdateStatus is conditional: the write lands only if the row still has
	// the expected status. Returns ErrConflict otherwise.
	UpdateStatus(ctx context.Context, id int64, from, to models.TaskStatus) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	const q = `
		INSERT INTO tasks (transaction_id, title, description, status, assignee_id, due_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		task.TransactionID, task.Title, task.Description, task.Status, task.AssigneeID, task.DueAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	const q = `SELECT id, transaction_id, title, description, status, assignee_id, due_at, created_at, updated_at
		FROM tasks WHERE id = $1`
	t := &models.Task{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.TransactionID, &t.Title, &t.Description, &t.Status,
		&t.AssigneeID, &t.DueAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT id, transaction_id, title, description, status, assignee_id, due_at, created_at, updated_at
		FROM tasks`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.TransactionID != nil {
		conditions = append(conditions, fmt.Sprintf("transaction_id = $%d", argID))
		args = append(args, *filter.TransactionID)
		argID++
	}
	if filter.AssigneeID != nil {
		conditions = append(conditions, fmt.Sprintf("assignee_id = $%d", argID))
		args = append(args, *filter.AssigneeID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.TransactionID, &t.Title, &t.Description, &t.Status,
			&t.AssigneeID, &t.DueAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id int64, from, to models.TaskStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`, to, id, from)
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
