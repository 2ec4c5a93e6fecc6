package models

import "time"

// EventLogEntry is a system-level domain fact keyed by transaction.
// Rows are append-only: never updated, never deleted.
type EventLogEntry struct {
	ID            int64     `json:"id"`
	TransactionID int64     `json:"transaction_id"`
	EventType     string    `json:"event_type"`
	EntityType    string    `json:"entity_type"`
	EntityID      *int64    `json:"entity_id,omitempty"`
	Detail        string    `json:"detail"`
	CreatedAt     time.Time `json:"created_at"`
}
