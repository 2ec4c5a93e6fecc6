package repositories

import (
	"context"
	"database/sql"

	"tcontrol/internal/models"
)

type MembershipRepository interface {
	Store(ctx context.Context, m *models.Membership) error
	FindRole(ctx context.Context, userID, orgID int64) (string, error)
	// HasRole reports whether the user holds the role in any organisation.
	HasRole(ctx context.Context, userID int64, role string) (bool, error)
	ListOrgIDs(ctx context.Context, userID int64) ([]int64, error)
}

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Store(ctx context.Context, m *models.Membership) error {
	const q = `
		INSERT INTO memberships (org_id, user_id, role)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, m.OrgID, m.UserID, m.Role).Scan(&m.ID, &m.CreatedAt)
}

// FindRole returns the user's role in the org, or ErrNotFound if the user
// is not a member.
func (r *membershipRepository) FindRole(ctx context.Context, userID, orgID int64) (string, error) {
	const q = `SELECT role FROM memberships WHERE user_id = $1 AND org_id = $2`
	var role string
	err := r.db.QueryRowContext(ctx, q, userID, orgID).Scan(&role)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return role, nil
}

func (r *membershipRepository) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM memberships WHERE user_id = $1 AND role = $2)`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, userID, role).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *membershipRepository) ListOrgIDs(ctx context.Context, userID int64) ([]int64, error) {
	const q = `SELECT org_id FROM memberships WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
