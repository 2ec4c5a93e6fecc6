package repositories

import (
	"context"
	"database/sql"

	"tcontrol/internal/models"
)

type OrgRepository interface {
	Store(ctx context.Context, org *models.Org) error
	FindByID(ctx context.Context, id int64) (*models.Org, error)
}

type orgRepository struct {
	db *sql.DB
}

func NewOrgRepository(db *sql.DB) OrgRepository {
	return &orgRepository{db: db}
}

func (r *orgRepository) Store(ctx context.Context, org *models.Org) error {
	const q = `
		INSERT INTO orgs (name, slug)
		VALUES ($1,$2)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, org.Name, org.Slug).Scan(&org.ID, &org.CreatedAt)
}

func (r *orgRepository) FindByID(ctx context.Context, id int64) (*models.Org, error) {
	const q = `SELECT id, name, slug, created_at FROM orgs WHERE id = $1`
	o := &models.Org{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
