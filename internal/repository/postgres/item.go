package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mindvault/mindvault-server/internal/model"
)

var _ model.ItemStore = (*ItemRepository)(nil)

type ItemRepository struct {
	db *Connection
}

func NewItemRepository(db *Connection) *ItemRepository {
	return &ItemRepository{
		db: db,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	query := `INSERT INTO items (id, owner_id, title, description, type, tags, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, owner_id, title, description, type, tags, created_at, updated_at`

	var savedItem model.Item
	err := r.db.QueryRow(ctx, query,
		item.ID, item.OwnerID, item.Title, item.Description, item.Type, item.Tags,
		item.CreatedAt, item.UpdatedAt,
	).Scan(
		&savedItem.ID, &savedItem.OwnerID, &savedItem.Title, &savedItem.Description,
		&savedItem.Type, &savedItem.Tags, &savedItem.CreatedAt, &savedItem.UpdatedAt,
	)
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	return savedItem, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Item, error) {
	var item model.Item
	query := `SELECT id, owner_id, title, description, type, tags, created_at, updated_at
			  FROM items WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.OwnerID, &item.Title, &item.Description,
		&item.Type, &item.Tags, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, model.ErrNotFound
		}
		return model.Item{}, fmt.Errorf("failed to get item by id: %w", err)
	}

	return item, nil
}

// ListByOwner returns the owner's items. The type filter is an exact match;
// the search term is applied to the title as a case-insensitive regular
// expression.
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter model.ItemFilter) ([]model.Item, error) {
	query := `SELECT id, owner_id, title, description, type, tags, created_at, updated_at
			  FROM items WHERE owner_id = $1`
	args := []any{ownerID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.SearchTerm != "" {
		args = append(args, filter.SearchTerm)
		query += fmt.Sprintf(" AND title ~* $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by owner: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Title, &item.Description,
			&item.Type, &item.Tags, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, item model.Item) (model.Item, error) {
	query := `UPDATE items SET title = $2, description = $3, type = $4, tags = $5, updated_at = $6
			  WHERE id = $1
			  RETURNING id, owner_id, title, description, type, tags, created_at, updated_at`

	var savedItem model.Item
	err := r.db.QueryRow(ctx, query,
		item.ID, item.Title, item.Description, item.Type, item.Tags, item.UpdatedAt,
	).Scan(
		&savedItem.ID, &savedItem.OwnerID, &savedItem.Title, &savedItem.Description,
		&savedItem.Type, &savedItem.Tags, &savedItem.CreatedAt, &savedItem.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, model.ErrNotFound
		}
		return model.Item{}, fmt.Errorf("failed to update item: %w", err)
	}

	return savedItem, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
