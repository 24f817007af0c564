package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"favorites-service/internal/favorite/domain"
	"favorites-service/pkg/database"
)

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Create inserts a new favorite. A unique violation on (customer_id,
// product_id) is translated to ErrAlreadyFavorited: the constraint is the
// arbiter between concurrent creates for the same pair.
func (r *GormFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyFavorited
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// Update saves an existing favorite row
func (r *GormFavoriteRepository) Update(ctx context.Context, favorite *domain.Favorite) error {
	if err := r.db.WithContext(ctx).Save(favorite).Error; err != nil {
		return fmt.Errorf("failed to update favorite: %w", err)
	}
	return nil
}

// FindByID retrieves a favorite by id regardless of active state
func (r *GormFavoriteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Favorite, error) {
	var favorite domain.Favorite
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return &favorite, nil
}

// FindByCustomerAndProduct retrieves the row for a (customer, product) pair
// regardless of active state
func (r *GormFavoriteRepository) FindByCustomerAndProduct(ctx context.Context, customerID uint, productID int) (*domain.Favorite, error) {
	var favorite domain.Favorite
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return &favorite, nil
}

// FindActiveByCustomer retrieves a customer's active favorites, newest first
func (r *GormFavoriteRepository) FindActiveByCustomer(ctx context.Context, customerID uint) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND active = ?", customerID, true).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}
	return favorites, nil
}

// DeleteByCustomer hard-deletes all of a customer's favorite rows. Only used
// when the owning account is deleted.
func (r *GormFavoriteRepository) DeleteByCustomer(ctx context.Context, customerID uint) error {
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&domain.Favorite{}).Error; err != nil {
		return fmt.Errorf("failed to delete favorites: %w", err)
	}
	return nil
}

// AutoMigrate runs database migrations
func (r *GormFavoriteRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorite{})
}

// GormTxManager runs favorite mutations inside a transaction with a
// transaction-scoped repository
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new transaction manager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// Do runs fn in one transaction; commit hooks registered by fn fire only after
// the transaction has committed
func (m *GormTxManager) Do(ctx context.Context, fn func(repo domain.FavoriteRepository, hooks *database.CommitHooks) error) error {
	return database.RunInTransaction(ctx, m.db, func(tx *gorm.DB, hooks *database.CommitHooks) error {
		return fn(NewGormFavoriteRepository(tx), hooks)
	})
}
