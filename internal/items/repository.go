package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-hq/atelier/internal/shared"
)

// Repository defines persistence operations for items.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context, skip, limit int) ([]Item, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]Item, int, error)
	Create(ctx context.Context, item Item) error
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const itemColumns = `id, title, description, owner_id, created_at, updated_at`

func scanItem(row pgx.Row) (*Item, error) {
	var (
		item        Item
		description pgtype.Text
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := row.Scan(&item.ID, &item.Title, &description, &item.OwnerID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("items: scan: %w", err)
	}
	item.Description = description.String
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time
	return &item, nil
}

// Get fetches an item by primary key.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return scanItem(r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
}

func (r *PGRepository) page(ctx context.Context, countSQL, listSQL string, args []any, skip, limit int) ([]Item, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("items: count: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, append(args, skip, limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("items: list: %w", err)
	}
	defer rows.Close()

	var result []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("items: list rows: %w", err)
	}
	return result, total, nil
}

// List returns a page of all items plus the total count.
func (r *PGRepository) List(ctx context.Context, skip, limit int) ([]Item, int, error) {
	return r.page(ctx,
		`SELECT count(*) FROM items`,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at, id OFFSET $1 LIMIT $2`,
		nil, skip, limit)
}

// ListByOwner returns a page of one owner's items plus that owner's total.
func (r *PGRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]Item, int, error) {
	return r.page(ctx,
		`SELECT count(*) FROM items WHERE owner_id = $1`,
		`SELECT `+itemColumns+` FROM items WHERE owner_id = $1 ORDER BY created_at, id OFFSET $2 LIMIT $3`,
		[]any{ownerID}, skip, limit)
}

// Create inserts a new item row.
func (r *PGRepository) Create(ctx context.Context, item Item) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO items (id, title, description, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())`,
		item.ID, item.Title,
		pgtype.Text{String: item.Description, Valid: item.Description != ""},
		item.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("items: create: %w", err)
	}
	return nil
}

// Update persists the mutable columns of the item row.
func (r *PGRepository) Update(ctx context.Context, item Item) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET title = $2, description = $3, updated_at = now() WHERE id = $1`,
		item.ID, item.Title,
		pgtype.Text{String: item.Description, Valid: item.Description != ""},
	)
	if err != nil {
		return fmt.Errorf("items: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an item row.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("items: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByOwner removes every item belonging to the given owner.
func (r *PGRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM items WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("items: delete by owner: %w", err)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
