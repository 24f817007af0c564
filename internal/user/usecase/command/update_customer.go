package command

import (
	"context"
	"fmt"
	"strings"

	"favorites-service/internal/user/domain"
	"favorites-service/pkg/auth"
)

// UpdateCustomerCommand represents the command to update a customer profile.
// Empty fields are left unchanged.
type UpdateCustomerCommand struct {
	ID        uint
	Principal auth.Principal
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateCustomerHandler handles customer profile updates. Customers may only
// update their own profile unless they are superusers.
type UpdateCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewUpdateCustomerHandler creates a new update customer handler
func NewUpdateCustomerHandler(repo domain.CustomerRepository) *UpdateCustomerHandler {
	return &UpdateCustomerHandler{repo: repo}
}

// Handle executes the update customer command
func (h *UpdateCustomerHandler) Handle(ctx context.Context, cmd UpdateCustomerCommand) (*domain.Customer, error) {
	if cmd.ID != cmd.Principal.ID && !cmd.Principal.Superuser {
		return nil, domain.ErrForbidden
	}

	customer, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Username != "" {
		customer.Username = cmd.Username
	}
	if cmd.Email != "" {
		customer.Email = strings.ToLower(cmd.Email)
	}
	if cmd.FirstName != "" {
		customer.FirstName = cmd.FirstName
	}
	if cmd.LastName != "" {
		customer.LastName = cmd.LastName
	}
	if cmd.Password != "" {
		hashed, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		customer.Password = hashed
	}

	if err := h.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}
