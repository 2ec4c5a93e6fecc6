package models

import "time"

// SweepSummary is what one deadline-check cycle reports back to its caller:
// the single timestamp the cycle was evaluated against and how many tasks
// were transitioned to overdue.
type SweepSummary struct {
	CheckedAt     time.Time `json:"checked_at"`
	OverdueMarked int       `json:"overdue_marked"`
}

// OverdueCandidate is one row of the sweep's qualifying set. OrgID is
// resolved through the task's transaction up front so audit attribution
// never has to chase the relationship at write time.
type OverdueCandidate struct {
	Task  Task
	OrgID int64
}

// OverdueDetail is the payload written (as JSON) to both the event log and
// the audit event for every overdue transition. The field set is fixed:
// serialize -> deserialize must yield identical fields.
type OverdueDetail struct {
	TaskID          int64      `json:"task_id"`
	TaskTitle       string     `json:"task_title"`
	TransactionID   int64      `json:"transaction_id"`
	OldStatus       TaskStatus `json:"old_status"`
	NewStatus       TaskStatus `json:"new_status"`
	DueAt           *time.Time `json:"due_at"`
	MarkedOverdueAt time.Time  `json:"marked_overdue_at"`
}
