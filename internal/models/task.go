// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusOverdue    TaskStatus = "overdue"
)

// Task represents a single checklist item inside a transaction.
type Task struct {
	ID            int64      `json:"id"`
	TransactionID int64      `json:"transaction_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        TaskStatus `json:"status"`
	AssigneeID    *int64     `json:"assignee_id,omitempty"`
	DueAt         *time.Time `json:"due_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	TransactionID *int64
	AssigneeID    *int64
	Status        *TaskStatus
}
