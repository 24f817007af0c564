package domain

import (
	"context"
	"time"
)

// Customer represents a customer account (domain model)
type Customer struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Username  string     `json:"username" gorm:"uniqueIndex;not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"` // Never expose password in JSON
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Superuser bool       `json:"-" gorm:"not null;default:false"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"date_joined"`
	UpdatedAt time.Time  `json:"-"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// CustomerRepository defines the contract for customer data access. Delete
// removes the account and all of its favorite rows in one transaction.
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindByUsername(ctx context.Context, username string) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uint) error
}
