package command

import (
	"context"

	"favorites-service/internal/user/domain"
	"favorites-service/kafka"
	"favorites-service/pkg/auth"
	"favorites-service/pkg/logger"
)

// FavoritesInvalidator drops a customer's favorites view cache entry
type FavoritesInvalidator interface {
	Invalidate(ctx context.Context, customerID uint) error
}

// DeleteCustomerCommand represents the command to delete a customer account
type DeleteCustomerCommand struct {
	ID        uint
	Principal auth.Principal
}

// DeleteCustomerHandler deletes a customer account. The storage layer cascades
// deletion of the customer's favorite rows; the view cache entry is
// invalidated, not rebuilt, since there is nothing left to rebuild into.
type DeleteCustomerHandler struct {
	repo  domain.CustomerRepository
	views FavoritesInvalidator
	audit *kafka.Publisher
}

// NewDeleteCustomerHandler creates a new delete customer handler
func NewDeleteCustomerHandler(repo domain.CustomerRepository, views FavoritesInvalidator, audit *kafka.Publisher) *DeleteCustomerHandler {
	return &DeleteCustomerHandler{repo: repo, views: views, audit: audit}
}

// Handle executes the delete customer command
func (h *DeleteCustomerHandler) Handle(ctx context.Context, cmd DeleteCustomerCommand) error {
	if cmd.ID != cmd.Principal.ID && !cmd.Principal.Superuser {
		return domain.ErrForbidden
	}

	if err := h.repo.Delete(ctx, cmd.ID); err != nil {
		return err
	}

	// Runs only after the delete transaction has committed
	if err := h.views.Invalidate(ctx, cmd.ID); err != nil {
		logger.Error(ctx).Err(err).Uint("customer_id", cmd.ID).Msg("Failed to invalidate favorites view")
	}
	h.audit.PublishCustomerDeleted(ctx, kafka.CustomerDeletedEvent{CustomerID: cmd.ID})

	return nil
}
