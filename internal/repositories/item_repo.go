package repositories

import (
	"context"
	"errors"

	"shelflife/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrItemNotFound is returned for lookups, updates, and deletes against an
// absent id. Callers must check for it; it is never a panic.
var ErrItemNotFound = errors.New("item not found")

// DB is the subset of pgxpool.Pool the repository uses; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Item, error)
}

type itemRepo struct {
	db DB
}

func NewItemRepository(db DB) ItemRepository {
	return &itemRepo{db: db}
}

const itemColumns = `id, name, category, quantity, low_stock_threshold, expiry_date, batch_number, description, date_added, last_updated`

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Quantity, item.LowStockThreshold,
		item.ExpiryDate, item.BatchNumber, item.Description, item.DateAdded, item.LastUpdated)
	return err
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item := &models.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Category, &item.Quantity, &item.LowStockThreshold,
		&item.ExpiryDate, &item.BatchNumber, &item.Description, &item.DateAdded, &item.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET name = $1, category = $2, quantity = $3, low_stock_threshold = $4,
		    expiry_date = $5, batch_number = $6, description = $7, last_updated = $8
		WHERE id = $9
	`
	tag, err := r.db.Exec(ctx, query,
		item.Name, item.Category, item.Quantity, item.LowStockThreshold,
		item.ExpiryDate, item.BatchNumber, item.Description, item.LastUpdated, item.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// List returns the full collection newest-touched first. The engine treats the
// returned slice as an immutable snapshot for the duration of one computation.
func (r *itemRepo) List(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		ORDER BY last_updated DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Category, &item.Quantity, &item.LowStockThreshold,
			&item.ExpiryDate, &item.BatchNumber, &item.Description, &item.DateAdded, &item.LastUpdated); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
