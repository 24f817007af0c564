package command

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"favorites-service/internal/favorite/domain"
	"favorites-service/internal/favorite/viewcache"
	"favorites-service/pkg/auth"
	"favorites-service/pkg/cache"
)

func TestDeactivateFavorite_Owner(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views := viewcache.New(cache.NewMemoryStore(), mockRepo, time.Minute)
	tx := &fakeTxManager{repo: mockRepo}

	favorite, err := domain.NewFavorite(7, 3, domain.JSONMap{"title": "Jacket"})
	require.NoError(t, err)

	mockRepo.On("FindByID", ctx, favorite.ID).Return(favorite, nil)
	mockRepo.On("Update", ctx, favorite).Return(nil)
	mockRepo.On("FindActiveByCustomer", mock.Anything, uint(7)).Return([]domain.Favorite{}, nil)

	handler := NewDeactivateFavoriteHandler(tx, views, nil)

	// Act
	err = handler.Handle(ctx, DeactivateFavoriteCommand{
		FavoriteID: favorite.ID,
		Principal:  auth.Principal{ID: 7},
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, favorite.Active)

	// The commit hook rebuilt the now-empty view
	cached, ok := views.Get(ctx, 7)
	require.True(t, ok)
	assert.Empty(t, cached)
	mockRepo.AssertExpectations(t)
}

func TestDeactivateFavorite_NotOwner(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views := viewcache.New(cache.NewMemoryStore(), mockRepo, time.Minute)
	tx := &fakeTxManager{repo: mockRepo}

	favorite, err := domain.NewFavorite(7, 3, domain.JSONMap{"title": "Jacket"})
	require.NoError(t, err)

	mockRepo.On("FindByID", ctx, favorite.ID).Return(favorite, nil)

	handler := NewDeactivateFavoriteHandler(tx, views, nil)

	// Act
	err = handler.Handle(ctx, DeactivateFavoriteCommand{
		FavoriteID: favorite.ID,
		Principal:  auth.Principal{ID: 99},
	})

	// Assert: no state change, no side effects
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.True(t, favorite.Active)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "FindActiveByCustomer", mock.Anything, mock.Anything)
}

func TestDeactivateFavorite_SuperuserOverride(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views := viewcache.New(cache.NewMemoryStore(), mockRepo, time.Minute)
	tx := &fakeTxManager{repo: mockRepo}

	favorite, err := domain.NewFavorite(7, 3, domain.JSONMap{"title": "Jacket"})
	require.NoError(t, err)

	mockRepo.On("FindByID", ctx, favorite.ID).Return(favorite, nil)
	mockRepo.On("Update", ctx, favorite).Return(nil)
	mockRepo.On("FindActiveByCustomer", mock.Anything, uint(7)).Return([]domain.Favorite{}, nil)

	handler := NewDeactivateFavoriteHandler(tx, views, nil)

	// Act
	err = handler.Handle(ctx, DeactivateFavoriteCommand{
		FavoriteID: favorite.ID,
		Principal:  auth.Principal{ID: 99, Superuser: true},
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, favorite.Active)
	mockRepo.AssertExpectations(t)
}

func TestDeactivateFavorite_AlreadyInactive(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views := viewcache.New(cache.NewMemoryStore(), mockRepo, time.Minute)
	tx := &fakeTxManager{repo: mockRepo}

	favorite, err := domain.NewFavorite(7, 3, domain.JSONMap{"title": "Jacket"})
	require.NoError(t, err)
	favorite.Active = false

	mockRepo.On("FindByID", ctx, favorite.ID).Return(favorite, nil)

	handler := NewDeactivateFavoriteHandler(tx, views, nil)

	// Act
	err = handler.Handle(ctx, DeactivateFavoriteCommand{
		FavoriteID: favorite.ID,
		Principal:  auth.Principal{ID: 7},
	})

	// Assert: indistinguishable from an unknown id
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeactivateFavorite_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views := viewcache.New(cache.NewMemoryStore(), mockRepo, time.Minute)
	tx := &fakeTxManager{repo: mockRepo}

	id := uuid.New()
	mockRepo.On("FindByID", ctx, id).Return(nil, domain.ErrNotFound)

	handler := NewDeactivateFavoriteHandler(tx, views, nil)

	// Act
	err := handler.Handle(ctx, DeactivateFavoriteCommand{
		FavoriteID: id,
		Principal:  auth.Principal{ID: 7},
	})

	// Assert
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
