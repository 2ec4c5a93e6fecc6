package models

import "time"

// Membership roles within an organisation.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Membership links a user to an organisation with a role.
// (org_id, user_id) is unique.
type Membership struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"org_id"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
