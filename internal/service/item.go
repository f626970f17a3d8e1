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

// Item implements owner-scoped item operations. Reads are filtered by the
// subject drawn from the verified context; writes load the target first and
// reject ownership mismatches before mutating.
type Item struct {
	itemStore model.ItemStore
	userStore model.UserStore
	logger    *logger.Logger
}

// NewItem creates a new Item service.
func NewItem(itemStore model.ItemStore, userStore model.UserStore, logger *logger.Logger) *Item {
	return &Item{
		itemStore: itemStore,
		userStore: userStore,
		logger:    logger,
	}
}

// CreateItem validates the input and stores a new item owned by the subject.
func (s *Item) CreateItem(ctx context.Context, subject uuid.UUID, params model.CreateItemParams) (model.Item, error) {
	if err := validateItemInput(params.Title, params.Description, params.Type, params.Tags); err != nil {
		return model.Item{}, err
	}

	_, err := s.userStore.GetByID(ctx, subject)
	if errors.Is(err, model.ErrNotFound) {
		return model.Item{}, apierrors.NewNotFound("user")
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	now := time.Now()
	item := model.Item{
		ID:          uuid.New(),
		OwnerID:     subject,
		Title:       params.Title,
		Description: params.Description,
		Type:        params.Type,
		Tags:        params.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	item, err = s.itemStore.Create(ctx, item)
	if err != nil {
		s.logger.Error("Item service: failed to create item",
			"user_id", subject,
			"error", err.Error())
		return model.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("Item service: item created", "item_id", item.ID, "user_id", subject)

	return item, nil
}

// GetItem returns a single item. Items owned by other users are reported as
// not found, so their existence is not disclosed.
func (s *Item) GetItem(ctx context.Context, subject uuid.UUID, itemID uuid.UUID) (model.Item, error) {
	item, err := s.itemStore.GetByID(ctx, itemID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Item{}, apierrors.NewNotFound("item")
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to get item by id: %w", err)
	}

	if item.OwnerID != subject {
		return model.Item{}, apierrors.NewNotFound("item")
	}

	return item, nil
}

// GetItems returns the subject's items, optionally narrowed by type and a
// title search term.
func (s *Item) GetItems(ctx context.Context, subject uuid.UUID, filter model.ItemFilter) ([]model.Item, error) {
	items, err := s.itemStore.ListByOwner(ctx, subject, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by owner: %w", err)
	}

	return items, nil
}

// GetItemsByUser returns the subject's items. The requested ID comes from
// client input and is deliberately ignored: the scoping identifier is always
// the verified subject.
func (s *Item) GetItemsByUser(ctx context.Context, subject uuid.UUID, requested uuid.UUID) ([]model.Item, error) {
	if requested != uuid.Nil && requested != subject {
		s.logger.Warn("Item service: ignoring client-supplied user id",
			"user_id", subject,
			"requested_id", requested)
	}

	return s.GetItems(ctx, subject, model.ItemFilter{})
}

// UpdateItem applies a patch to an item owned by the subject.
func (s *Item) UpdateItem(ctx context.Context, subject uuid.UUID, itemID uuid.UUID, params model.UpdateItemParams) (model.Item, error) {
	item, err := s.loadOwned(ctx, subject, itemID)
	if err != nil {
		return model.Item{}, err
	}

	if params.Title != nil {
		item.Title = *params.Title
	}
	if params.Description != nil {
		item.Description = *params.Description
	}
	if params.Type != nil {
		item.Type = *params.Type
	}
	if params.Tags != nil {
		item.Tags = *params.Tags
	}

	if err := validateItemInput(item.Title, item.Description, item.Type, item.Tags); err != nil {
		return model.Item{}, err
	}

	item.UpdatedAt = time.Now()

	item, err = s.itemStore.Update(ctx, item)
	if errors.Is(err, model.ErrNotFound) {
		return model.Item{}, apierrors.NewNotFound("item")
	}
	if err != nil {
		s.logger.Error("Item service: failed to update item",
			"item_id", itemID,
			"user_id", subject,
			"error", err.Error())
		return model.Item{}, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info("Item service: item updated", "item_id", itemID, "user_id", subject)

	return item, nil
}

// DeleteItem removes an item owned by the subject and returns it. A repeated
// call for the same ID reports not found.
func (s *Item) DeleteItem(ctx context.Context, subject uuid.UUID, itemID uuid.UUID) (model.Item, error) {
	item, err := s.loadOwned(ctx, subject, itemID)
	if err != nil {
		return model.Item{}, err
	}

	err = s.itemStore.Delete(ctx, itemID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Item{}, apierrors.NewNotFound("item")
	}
	if err != nil {
		s.logger.Error("Item service: failed to delete item",
			"item_id", itemID,
			"user_id", subject,
			"error", err.Error())
		return model.Item{}, fmt.Errorf("failed to delete item: %w", err)
	}

	s.logger.Info("Item service: item deleted", "item_id", itemID, "user_id", subject)

	return item, nil
}

// loadOwned loads the mutation target and checks ownership. The check and
// the following write are not wrapped in a transaction; items have a single
// owner for their whole lifetime, so the window is harmless here.
func (s *Item) loadOwned(ctx context.Context, subject uuid.UUID, itemID uuid.UUID) (model.Item, error) {
	item, err := s.itemStore.GetByID(ctx, itemID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Item{}, apierrors.NewNotFound("item")
	}
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to get item by id: %w", err)
	}

	if item.OwnerID != subject {
		s.logger.Info("Item service: ownership mismatch",
			"item_id", itemID,
			"user_id", subject)
		return model.Item{}, apierrors.NewForbidden()
	}

	return item, nil
}

func validateItemInput(title, description, itemType string, tags []string) error {
	if strings.TrimSpace(title) == "" {
		return apierrors.NewValidation("title", "is required")
	}
	if strings.TrimSpace(description) == "" {
		return apierrors.NewValidation("description", "is required")
	}
	if strings.TrimSpace(itemType) == "" {
		return apierrors.NewValidation("type", "is required")
	}
	if len(tags) == 0 {
		return apierrors.NewValidation("tags", "must contain at least one tag")
	}
	return nil
}
