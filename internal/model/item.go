package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ItemStore defines persistence operations for items.
type ItemStore interface {
	Create(ctx context.Context, item Item) (Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (Item, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter ItemFilter) ([]Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Item represents a stored knowledge-base entry. Every item has exactly one
// owning user and is visible and mutable only to that owner.
type Item struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemFilter narrows item listings. Type matches exactly; SearchTerm is a
// case-insensitive regular expression applied to the title.
type ItemFilter struct {
	Type       string
	SearchTerm string
}

// CreateItemParams contains parameters to create an item.
type CreateItemParams struct {
	Title       string
	Description string
	Type        string
	Tags        []string
}

// UpdateItemParams contains an item patch. Nil fields are left unchanged.
type UpdateItemParams struct {
	Title       *string
	Description *string
	Type        *string
	Tags        *[]string
}
