package models

import "time"

// Org is the tenant boundary: every transaction and every audit event is
// attributed to exactly one organisation.
type Org struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
