package model

import (
	"context"

	"github.com/google/uuid"
)

// CategoryStore defines persistence operations for categories.
type CategoryStore interface {
	Create(ctx context.Context, category Category) (Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, category Category) (Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Category is a global, unscoped entity: any authenticated user may read or
// mutate any category.
type Category struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Count int       `json:"count"`
}
