package repositories

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"tcontrol/internal/models"
)

type TransactionRepository interface {
	Store(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id int64) (*models.Transaction, error)
	ListByOrgIDs(ctx context.Context, orgIDs []int64) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Store(ctx context.Context, txn *models.Transaction) error {
	const q = `
		INSERT INTO transactions (org_id, title, description, status, property_address, close_date)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		txn.OrgID, txn.Title, txn.Description, txn.Status, txn.PropertyAddress, txn.CloseDate,
	).Scan(&txn.ID, &txn.CreatedAt)
}

func (r *transactionRepository) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	const q = `SELECT id, org_id, title, description, status, property_address, close_date, created_at
		FROM transactions WHERE id = $1`
	t := &models.Transaction{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.OrgID, &t.Title, &t.Description, &t.Status, &t.PropertyAddress,
		&t.CloseDate, &t.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *transactionRepository) ListByOrgIDs(ctx context.Context, orgIDs []int64) ([]models.Transaction, error) {
	if len(orgIDs) == 0 {
		return nil, nil
	}
	const q = `SELECT id, org_id, title, description, status, property_address, close_date, created_at
		FROM transactions
		WHERE org_id = ANY($1)
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(orgIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID, &t.OrgID, &t.Title, &t.Description, &t.Status, &t.PropertyAddress,
			&t.CloseDate, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
