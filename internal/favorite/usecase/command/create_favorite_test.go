package command

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"favorites-service/internal/catalog"
	"favorites-service/internal/favorite/domain"
	"favorites-service/internal/favorite/viewcache"
	"favorites-service/pkg/cache"
	"favorites-service/pkg/database"
)

// MockFavoriteRepository is a testify mock of domain.FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Update(ctx context.Context, favorite *domain.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Favorite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) FindByCustomerAndProduct(ctx context.Context, customerID uint, productID int) (*domain.Favorite, error) {
	args := m.Called(ctx, customerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) FindActiveByCustomer(ctx context.Context, customerID uint) ([]domain.Favorite, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) DeleteByCustomer(ctx context.Context, customerID uint) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// fakeTxManager runs the mutation against the given repository and fires the
// commit hooks only when the mutation succeeds, mimicking a commit
type fakeTxManager struct {
	repo domain.FavoriteRepository
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(repo domain.FavoriteRepository, hooks *database.CommitHooks) error) error {
	hooks := &database.CommitHooks{}
	if err := fn(f.repo, hooks); err != nil {
		return err
	}
	hooks.Fire(ctx)
	return nil
}

// stubResolver returns a fixed payload or error for any product id
type stubResolver struct {
	payload json.RawMessage
	err     error
	calls   int
}

func (s *stubResolver) GetProduct(ctx context.Context, productID int) (json.RawMessage, error) {
	s.calls++
	return s.payload, s.err
}

func newCreateFixture(repo domain.FavoriteRepository) (*viewcache.ViewCache, domain.TxManager) {
	views := viewcache.New(cache.NewMemoryStore(), repo, time.Minute)
	return views, &fakeTxManager{repo: repo}
}

func TestCreateFavorite_NewFavorite(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views, tx := newCreateFixture(mockRepo)
	resolver := &stubResolver{payload: json.RawMessage(`{"id":3,"title":"Mens Cotton Jacket","price":55.99}`)}

	mockRepo.On("FindByCustomerAndProduct", ctx, uint(7), 3).Return(nil, domain.ErrNotFound)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Favorite")).Return(nil)
	mockRepo.On("FindActiveByCustomer", mock.Anything, uint(7)).Return([]domain.Favorite{}, nil)

	handler := NewCreateFavoriteHandler(resolver, tx, views, nil)

	// Act
	favorite, err := handler.Handle(ctx, CreateFavoriteCommand{CustomerID: 7, ProductID: 3})

	// Assert
	require.NoError(t, err)
	assert.True(t, favorite.Active)
	assert.Equal(t, uint(7), favorite.CustomerID)
	assert.Equal(t, 3, favorite.ProductID)
	assert.NotEqual(t, uuid.Nil, favorite.ID)
	assert.Equal(t, "Mens Cotton Jacket", favorite.ProductData["title"])

	// The product id lives in its own column, not in the snapshot
	_, hasID := favorite.ProductData["id"]
	assert.False(t, hasID)

	// The commit hook rebuilt the customer's view
	_, ok := views.Get(ctx, 7)
	assert.True(t, ok)
	mockRepo.AssertExpectations(t)
}

func TestCreateFavorite_AlreadyActive(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views, tx := newCreateFixture(mockRepo)
	resolver := &stubResolver{payload: json.RawMessage(`{"id":3,"title":"Jacket"}`)}

	existing, err := domain.NewFavorite(7, 3, domain.JSONMap{"title": "Jacket"})
	require.NoError(t, err)
	mockRepo.On("FindByCustomerAndProduct", ctx, uint(7), 3).Return(existing, nil)

	handler := NewCreateFavoriteHandler(resolver, tx, views, nil)

	// Act
	_, err = handler.Handle(ctx, CreateFavoriteCommand{CustomerID: 7, ProductID: 3})

	// Assert
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "FindActiveByCustomer", mock.Anything, mock.Anything)
}

func TestCreateFavorite_ReactivatesSoftDeletedRow(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views, tx := newCreateFixture(mockRepo)
	resolver := &stubResolver{payload: json.RawMessage(`{"id":3,"title":"Jacket v2","price":60}`)}

	existing, err := domain.NewFavorite(7, 3, domain.JSONMap{"title": "Jacket"})
	require.NoError(t, err)
	existing.Active = false
	originalID := existing.ID
	originalCreatedAt := existing.CreatedAt

	mockRepo.On("FindByCustomerAndProduct", ctx, uint(7), 3).Return(existing, nil)
	mockRepo.On("Update", ctx, existing).Return(nil)
	mockRepo.On("FindActiveByCustomer", mock.Anything, uint(7)).Return([]domain.Favorite{*existing}, nil)

	handler := NewCreateFavoriteHandler(resolver, tx, views, nil)

	// Act
	favorite, err := handler.Handle(ctx, CreateFavoriteCommand{CustomerID: 7, ProductID: 3})

	// Assert
	require.NoError(t, err)
	assert.True(t, favorite.Active)
	assert.Equal(t, originalID, favorite.ID)
	assert.Equal(t, originalCreatedAt, favorite.CreatedAt)

	// Re-favoriting refreshes the snapshot
	assert.Equal(t, "Jacket v2", favorite.ProductData["title"])
	mockRepo.AssertExpectations(t)
}

func TestCreateFavorite_ProductNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views, tx := newCreateFixture(mockRepo)
	resolver := &stubResolver{err: catalog.ErrProductNotFound}

	handler := NewCreateFavoriteHandler(resolver, tx, views, nil)

	// Act
	_, err := handler.Handle(ctx, CreateFavoriteCommand{CustomerID: 7, ProductID: 9999})

	// Assert: no row is touched when the product does not exist
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	mockRepo.AssertNotCalled(t, "FindByCustomerAndProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateFavorite_UpstreamFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views, tx := newCreateFixture(mockRepo)
	resolver := &stubResolver{err: fmt.Errorf("%w: status 500", catalog.ErrUpstreamUnavailable)}

	handler := NewCreateFavoriteHandler(resolver, tx, views, nil)

	// Act
	_, err := handler.Handle(ctx, CreateFavoriteCommand{CustomerID: 7, ProductID: 3})

	// Assert
	assert.ErrorIs(t, err, catalog.ErrUpstreamUnavailable)
	mockRepo.AssertNotCalled(t, "FindByCustomerAndProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateFavorite_ConcurrentInsertLosesRace(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockFavoriteRepository)
	views, tx := newCreateFixture(mockRepo)
	resolver := &stubResolver{payload: json.RawMessage(`{"id":3,"title":"Jacket"}`)}

	mockRepo.On("FindByCustomerAndProduct", ctx, uint(7), 3).Return(nil, domain.ErrNotFound)
	// The unique constraint arbitrates the race at insert time
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Favorite")).Return(domain.ErrAlreadyFavorited)

	handler := NewCreateFavoriteHandler(resolver, tx, views, nil)

	// Act
	_, err := handler.Handle(ctx, CreateFavoriteCommand{CustomerID: 7, ProductID: 3})

	// Assert: rollback discards the hooks, nothing rebuilds the view
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
	mockRepo.AssertNotCalled(t, "FindActiveByCustomer", mock.Anything, mock.Anything)
	_, ok := views.Get(ctx, 7)
	assert.False(t, ok)
}
