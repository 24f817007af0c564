package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"favorites-service/internal/catalog"
	"favorites-service/internal/favorite/domain"
	"favorites-service/internal/favorite/viewcache"
	"favorites-service/kafka"
	"favorites-service/pkg/database"
	"favorites-service/pkg/logger"
)

// ProductResolver resolves a product payload from the catalog
type ProductResolver interface {
	GetProduct(ctx context.Context, productID int) (json.RawMessage, error)
}

// CreateFavoriteCommand represents the command to favorite a product
type CreateFavoriteCommand struct {
	CustomerID uint
	ProductID  int
}

// CreateFavoriteHandler coordinates the absent→active and inactive→active
// transitions: resolve the product first, then mutate inside a transaction,
// and schedule the view rebuild and audit event to fire only after commit.
type CreateFavoriteHandler struct {
	resolver ProductResolver
	tx       domain.TxManager
	views    *viewcache.ViewCache
	audit    *kafka.Publisher
}

// NewCreateFavoriteHandler creates a new create favorite handler
func NewCreateFavoriteHandler(resolver ProductResolver, tx domain.TxManager, views *viewcache.ViewCache, audit *kafka.Publisher) *CreateFavoriteHandler {
	return &CreateFavoriteHandler{resolver: resolver, tx: tx, views: views, audit: audit}
}

// Handle executes the create favorite command
func (h *CreateFavoriteHandler) Handle(ctx context.Context, cmd CreateFavoriteCommand) (*domain.Favorite, error) {
	// Resolve the product before touching storage; a missing product must not
	// leave a row behind
	payload, err := h.resolver.GetProduct(ctx, cmd.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	var snapshot domain.JSONMap
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode product payload: %w", err)
	}
	// The product id already lives in its own column; keep the snapshot free of it
	delete(snapshot, "id")

	var favorite *domain.Favorite
	err = h.tx.Do(ctx, func(repo domain.FavoriteRepository, hooks *database.CommitHooks) error {
		existing, err := repo.FindByCustomerAndProduct(ctx, cmd.CustomerID, cmd.ProductID)

		var eventType string
		switch {
		case err == nil && existing.Active:
			return domain.ErrAlreadyFavorited

		case err == nil:
			// Reactivate the soft-deleted row in place, refreshing the
			// snapshot; id and creation time are preserved
			existing.Active = true
			existing.ProductData = snapshot
			existing.UpdatedAt = time.Now()
			if err := repo.Update(ctx, existing); err != nil {
				return err
			}
			favorite = existing
			eventType = kafka.EventTypeFavoriteReactivated

		case errors.Is(err, domain.ErrNotFound):
			created, err := domain.NewFavorite(cmd.CustomerID, cmd.ProductID, snapshot)
			if err != nil {
				return err
			}
			// A concurrent create for the same pair loses here with
			// ErrAlreadyFavorited from the unique constraint
			if err := repo.Create(ctx, created); err != nil {
				return err
			}
			favorite = created
			eventType = kafka.EventTypeFavoriteCreated

		default:
			return err
		}

		hooks.AfterCommit(func(ctx context.Context) {
			if _, err := h.views.Rebuild(ctx, cmd.CustomerID); err != nil {
				logger.Error(ctx).Err(err).Uint("customer_id", cmd.CustomerID).Msg("Post-commit view rebuild failed")
			}
			h.audit.PublishFavoriteEvent(ctx, kafka.FavoriteEvent{
				EventType:  eventType,
				FavoriteID: favorite.ID.String(),
				CustomerID: favorite.CustomerID,
				ProductID:  favorite.ProductID,
			})
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return favorite, nil
}
