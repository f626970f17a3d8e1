package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindvault/mindvault-server/internal/apierrors"
	"github.com/mindvault/mindvault-server/internal/logger"
	"github.com/mindvault/mindvault-server/internal/model"
)

// User implements profile operations. Write operations always act on the
// authenticated subject, never on a client-supplied identifier.
type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

// NewUser creates a new User service.
func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		logger:    logger,
	}
}

// GetUsers returns all registered users.
func (s *User) GetUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// GetUser returns a user by ID.
func (s *User) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewNotFound("user")
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the given name and email to the subject's own
// profile. Nil fields are left unchanged.
func (s *User) UpdateProfile(ctx context.Context, subject uuid.UUID, name, email *string) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, subject)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewNotFound("user")
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return model.User{}, apierrors.NewValidation("name", "is required")
		}
		user.Name = *name
	}

	if email != nil {
		if err := validateEmail(*email); err != nil {
			return model.User{}, err
		}
		other, err := s.userStore.GetByEmail(ctx, *email)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
		}
		if other.ID != uuid.Nil && other.ID != subject {
			s.logger.Info("User service: email already taken", "user_id", subject)
			return model.User{}, apierrors.NewUserAlreadyExists(*email)
		}
		user.Email = *email
	}

	user.UpdatedAt = time.Now()

	user, err = s.userStore.Update(ctx, user)
	if err != nil {
		s.logger.Error("User service: failed to update user",
			"user_id", subject,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: profile updated", "user_id", subject)

	return user, nil
}

// DeleteAccount removes the subject's account. Owned items are deleted in
// the same transaction so none are orphaned.
func (s *User) DeleteAccount(ctx context.Context, subject uuid.UUID) error {
	err := s.userStore.DeleteWithItems(ctx, subject)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewNotFound("user")
	}
	if err != nil {
		s.logger.Error("User service: failed to delete user",
			"user_id", subject,
			"error", err.Error())
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: account deleted", "user_id", subject)

	return nil
}
