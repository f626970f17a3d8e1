package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) (User, error)
	// DeleteWithItems removes the user and every item the user owns in a
	// single transaction.
	DeleteWithItems(ctx context.Context, id uuid.UUID) error
}

// AuthPayload carries the outcome of a successful registration or login.
type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// User represents a registered account. The password hash never leaves the
// server; it is excluded from any serialized representation.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
