package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mindvault/mindvault-server/internal/apierrors"
	"github.com/mindvault/mindvault-server/internal/logger"
	"github.com/mindvault/mindvault-server/internal/mocks"
	"github.com/mindvault/mindvault-server/internal/model"
)

func TestCategory_GetCategories(t *testing.T) {
	categoryStore := &mocks.CategoryStore{}
	categoryStore.On("List", mock.Anything).Return([]model.Category{
		{ID: uuid.New(), Title: "Articles", Count: 3},
		{ID: uuid.New(), Title: "Books", Count: 1},
	}, nil)

	service := NewCategory(categoryStore, logger.New(0))

	categories, err := service.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestCategory_GetCategory_NotFound(t *testing.T) {
	id := uuid.New()

	categoryStore := &mocks.CategoryStore{}
	categoryStore.On("GetByID", mock.Anything, id).Return(model.Category{}, model.ErrNotFound)

	service := NewCategory(categoryStore, logger.New(0))

	_, err := service.GetCategory(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, apierrors.KindNotFound, apierrors.AsError(err).Kind)
}

func TestCategory_CreateCategory(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		count     *int
		mockSetup func(*mocks.CategoryStore)
		wantErr   bool
		wantKind  apierrors.Kind
		wantCount int
	}{
		{
			name:  "explicit count",
			title: "Research Papers",
			count: intPtr(5),
			mockSetup: func(categoryStore *mocks.CategoryStore) {
				categoryStore.On("Create", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
					return c.Title == "Research Papers" && c.Count == 5
				})).Return(func(_ context.Context, c model.Category) model.Category { return c }, nil)
			},
			wantCount: 5,
		},
		{
			name:  "nil count defaults to zero",
			title: "Research Papers",
			mockSetup: func(categoryStore *mocks.CategoryStore) {
				categoryStore.On("Create", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
					return c.Count == 0
				})).Return(func(_ context.Context, c model.Category) model.Category { return c }, nil)
			},
		},
		{
			name:      "empty title rejected",
			title:     "  ",
			mockSetup: func(categoryStore *mocks.CategoryStore) {},
			wantErr:   true,
			wantKind:  apierrors.KindValidation,
		},
		{
			name:  "store error",
			title: "Research Papers",
			mockSetup: func(categoryStore *mocks.CategoryStore) {
				categoryStore.On("Create", mock.Anything, mock.Anything).Return(model.Category{}, errors.New("database error"))
			},
			wantErr:  true,
			wantKind: apierrors.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryStore := &mocks.CategoryStore{}
			tt.mockSetup(categoryStore)

			service := NewCategory(categoryStore, logger.New(0))

			result, err := service.CreateCategory(context.Background(), tt.title, tt.count)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apierrors.AsError(err).Kind)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, result.ID)
				assert.Equal(t, tt.title, result.Title)
				assert.Equal(t, tt.wantCount, result.Count)
			}

			categoryStore.AssertExpectations(t)
		})
	}
}

func TestCategory_UpdateCategory(t *testing.T) {
	id := uuid.New()
	current := model.Category{ID: id, Title: "Articles", Count: 3}

	tests := []struct {
		name      string
		title     string
		count     *int
		mockSetup func(*mocks.CategoryStore)
		wantErr   bool
		wantKind  apierrors.Kind
		check     func(*testing.T, model.Category)
	}{
		{
			name:  "title only keeps count",
			title: "Long Reads",
			mockSetup: func(categoryStore *mocks.CategoryStore) {
				categoryStore.On("GetByID", mock.Anything, id).Return(current, nil)
				categoryStore.On("Update", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
					return c.Title == "Long Reads" && c.Count == 3
				})).Return(func(_ context.Context, c model.Category) model.Category { return c }, nil)
			},
			check: func(t *testing.T, got model.Category) {
				assert.Equal(t, "Long Reads", got.Title)
				assert.Equal(t, 3, got.Count)
			},
		},
		{
			name:  "title and count",
			title: "Long Reads",
			count: intPtr(7),
			mockSetup: func(categoryStore *mocks.CategoryStore) {
				categoryStore.On("GetByID", mock.Anything, id).Return(current, nil)
				categoryStore.On("Update", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
					return c.Count == 7
				})).Return(func(_ context.Context, c model.Category) model.Category { return c }, nil)
			},
			check: func(t *testing.T, got model.Category) {
				assert.Equal(t, 7, got.Count)
			},
		},
		{
			name:      "empty title rejected",
			title:     "",
			mockSetup: func(categoryStore *mocks.CategoryStore) {},
			wantErr:   true,
			wantKind:  apierrors.KindValidation,
		},
		{
			name:  "missing category not found",
			title: "Long Reads",
			mockSetup: func(categoryStore *mocks.CategoryStore) {
				categoryStore.On("GetByID", mock.Anything, id).Return(model.Category{}, model.ErrNotFound)
			},
			wantErr:  true,
			wantKind: apierrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryStore := &mocks.CategoryStore{}
			tt.mockSetup(categoryStore)

			service := NewCategory(categoryStore, logger.New(0))

			result, err := service.UpdateCategory(context.Background(), id, tt.title, tt.count)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apierrors.AsError(err).Kind)
			} else {
				require.NoError(t, err)
				tt.check(t, result)
			}

			categoryStore.AssertExpectations(t)
		})
	}
}

func TestCategory_DeleteCategory(t *testing.T) {
	id := uuid.New()

	categoryStore := &mocks.CategoryStore{}
	categoryStore.On("Delete", mock.Anything, id).Return(nil)

	service := NewCategory(categoryStore, logger.New(0))

	err := service.DeleteCategory(context.Background(), id)
	require.NoError(t, err)

	categoryStore.AssertExpectations(t)
}

func TestCategory_DeleteCategory_NotFound(t *testing.T) {
	id := uuid.New()

	categoryStore := &mocks.CategoryStore{}
	categoryStore.On("Delete", mock.Anything, id).Return(model.ErrNotFound)

	service := NewCategory(categoryStore, logger.New(0))

	err := service.DeleteCategory(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, apierrors.KindNotFound, apierrors.AsError(err).Kind)
}

func intPtr(i int) *int {
	return &i
}
