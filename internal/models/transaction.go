package models

import (
	"time"
)

// TransactionStatus defines the lifecycle of a transaction (deal).
type TransactionStatus string

const (
	TxnDraft     TransactionStatus = "draft"
	TxnActive    TransactionStatus = "active"
	TxnClosed    TransactionStatus = "closed"
	TxnCancelled TransactionStatus = "cancelled"
)

// Transaction is the unit of work for one real-estate deal. It belongs to
// exactly one organisation and owns the tasks and timeline items under it.
type Transaction struct {
	ID              int64             `json:"id"`
	OrgID           int64             `json:"org_id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Status          TransactionStatus `json:"status"`
	PropertyAddress string            `json:"property_address"`
	CloseDate       *time.Time        `json:"close_date,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`

	// заполняется только при отдаче GET /transactions/:id
	Tasks []Task `json:"tasks,omitempty"`
}
