package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"favorites-service/pkg/database"
)

// JSONMap stores a JSON object in a jsonb column
type JSONMap map[string]interface{}

// Value implements driver.Valuer
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}

	return json.Unmarshal(data, m)
}

// Favorite represents a customer's persisted interest in a catalog product.
// ProductData is a snapshot of the product taken when the favorite became
// active; it is only refreshed on re-favoriting, never at read time.
type Favorite struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerID  uint      `json:"customer" gorm:"not null;uniqueIndex:idx_customer_product;index:idx_customer_active"`
	ProductID   int       `json:"product_id" gorm:"not null;uniqueIndex:idx_customer_product"`
	ProductData JSONMap   `json:"product_data" gorm:"type:jsonb"`
	Active      bool      `json:"active" gorm:"not null;default:true;index:idx_customer_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// NewFavorite builds an active favorite with a time-sortable id
func NewFavorite(customerID uint, productID int, productData JSONMap) (*Favorite, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate favorite id: %w", err)
	}

	now := time.Now()
	return &Favorite{
		ID:          id,
		CustomerID:  customerID,
		ProductID:   productID,
		ProductData: productData,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// FavoriteRepository defines the contract for favorite data access. The
// (customer, product) pair is unique at the constraint level regardless of
// active state; visibility is gated by the active flag in queries only.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *Favorite) error
	Update(ctx context.Context, favorite *Favorite) error
	FindByID(ctx context.Context, id uuid.UUID) (*Favorite, error)
	FindByCustomerAndProduct(ctx context.Context, customerID uint, productID int) (*Favorite, error)
	FindActiveByCustomer(ctx context.Context, customerID uint) ([]Favorite, error)
	DeleteByCustomer(ctx context.Context, customerID uint) error
}

// TxManager runs a mutation inside a storage transaction. Hooks registered by
// fn fire only after the transaction commits, never on rollback.
type TxManager interface {
	Do(ctx context.Context, fn func(repo FavoriteRepository, hooks *database.CommitHooks) error) error
}
