package command

import (
	"context"
	"fmt"
	"time"

	"favorites-service/internal/user/domain"
	"favorites-service/pkg/auth"
	"favorites-service/pkg/logger"
)

// LoginCustomerCommand represents the command to login a customer
type LoginCustomerCommand struct {
	Username string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token    string           `json:"token"`
	Customer *domain.Customer `json:"customer"`
}

// LoginCustomerHandler handles customer login
type LoginCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewLoginCustomerHandler creates a new login customer handler
func NewLoginCustomerHandler(repo domain.CustomerRepository) *LoginCustomerHandler {
	return &LoginCustomerHandler{repo: repo}
}

// Handle executes the login customer command
func (h *LoginCustomerHandler) Handle(ctx context.Context, cmd LoginCustomerCommand) (*LoginResponse, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	customer, err := h.repo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !auth.CheckPassword(customer.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(customer.ID, customer.Username, customer.Superuser)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	customer.LastLogin = &now
	if err := h.repo.Update(ctx, customer); err != nil {
		// Login still succeeds; last_login is informational
		logger.Warn(ctx).Err(err).Uint("customer_id", customer.ID).Msg("Failed to record last login")
	}

	return &LoginResponse{
		Token:    token,
		Customer: customer,
	}, nil
}
