package models

import "time"

// TimelineItem mirrors a milestone on the transaction's timeline. Items are
// seeded together with the starter tasks when a transaction is created.
type TimelineItem struct {
	ID            int64      `json:"id"`
	TransactionID int64      `json:"transaction_id"`
	Label         string     `json:"label"`
	Description   string     `json:"description"`
	DueAt         *time.Time `json:"due_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
