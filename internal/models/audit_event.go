package models

import "time"

// AuditEvent is a tenant-scoped record of an action taken on an entity.
// ActorID is nil for system-initiated actions (the deadline sweep).
// Rows are append-only: never updated, never deleted.
type AuditEvent struct {
	ID         int64     `json:"id"`
	OrgID      int64     `json:"org_id"`
	ActorID    *int64    `json:"actor_id,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   *int64    `json:"entity_id,omitempty"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}
