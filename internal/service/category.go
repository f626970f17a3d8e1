package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mindvault/mindvault-server/internal/apierrors"
	"github.com/mindvault/mindvault-server/internal/logger"
	"github.com/mindvault/mindvault-server/internal/model"
)

// Category implements operations on the global category collection. The
// resolver layer requires an authenticated identity, but no ownership filter
// applies: any authenticated user may mutate any category.
type Category struct {
	categoryStore model.CategoryStore
	logger        *logger.Logger
}

// NewCategory creates a new Category service.
func NewCategory(categoryStore model.CategoryStore, logger *logger.Logger) *Category {
	return &Category{
		categoryStore: categoryStore,
		logger:        logger,
	}
}

// GetCategories returns all categories.
func (s *Category) GetCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// GetCategory returns a category by ID.
func (s *Category) GetCategory(ctx context.Context, id uuid.UUID) (model.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Category{}, apierrors.NewNotFound("category")
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

// CreateCategory stores a new category. A nil count defaults to zero.
func (s *Category) CreateCategory(ctx context.Context, title string, count *int) (model.Category, error) {
	if strings.TrimSpace(title) == "" {
		return model.Category{}, apierrors.NewValidation("title", "is required")
	}

	category := model.Category{
		ID:    uuid.New(),
		Title: title,
	}
	if count != nil {
		category.Count = *count
	}

	category, err := s.categoryStore.Create(ctx, category)
	if err != nil {
		s.logger.Error("Category service: failed to create category", "error", err.Error())
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("Category service: category created", "category_id", category.ID)

	return category, nil
}

// UpdateCategory replaces the title and optionally the count of a category.
func (s *Category) UpdateCategory(ctx context.Context, id uuid.UUID, title string, count *int) (model.Category, error) {
	if strings.TrimSpace(title) == "" {
		return model.Category{}, apierrors.NewValidation("title", "is required")
	}

	category, err := s.categoryStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Category{}, apierrors.NewNotFound("category")
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to get category by id: %w", err)
	}

	category.Title = title
	if count != nil {
		category.Count = *count
	}

	category, err = s.categoryStore.Update(ctx, category)
	if errors.Is(err, model.ErrNotFound) {
		return model.Category{}, apierrors.NewNotFound("category")
	}
	if err != nil {
		s.logger.Error("Category service: failed to update category",
			"category_id", id,
			"error", err.Error())
		return model.Category{}, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.Info("Category service: category updated", "category_id", id)

	return category, nil
}

// DeleteCategory removes a category by ID.
func (s *Category) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := s.categoryStore.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewNotFound("category")
	}
	if err != nil {
		s.logger.Error("Category service: failed to delete category",
			"category_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("Category service: category deleted", "category_id", id)

	return nil
}
