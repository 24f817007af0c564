package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"favorites-service/internal/favorite/domain"
	"favorites-service/internal/favorite/viewcache"
	"favorites-service/kafka"
	"favorites-service/pkg/auth"
	"favorites-service/pkg/database"
	"favorites-service/pkg/logger"
)

// DeactivateFavoriteCommand represents the command to soft-delete a favorite
type DeactivateFavoriteCommand struct {
	FavoriteID uuid.UUID
	Principal  auth.Principal
}

// DeactivateFavoriteHandler handles the active→inactive transition. The row is
// retained; only the owner or a superuser may deactivate.
type DeactivateFavoriteHandler struct {
	tx    domain.TxManager
	views *viewcache.ViewCache
	audit *kafka.Publisher
}

// NewDeactivateFavoriteHandler creates a new deactivate favorite handler
func NewDeactivateFavoriteHandler(tx domain.TxManager, views *viewcache.ViewCache, audit *kafka.Publisher) *DeactivateFavoriteHandler {
	return &DeactivateFavoriteHandler{tx: tx, views: views, audit: audit}
}

// Handle executes the deactivate favorite command
func (h *DeactivateFavoriteHandler) Handle(ctx context.Context, cmd DeactivateFavoriteCommand) error {
	return h.tx.Do(ctx, func(repo domain.FavoriteRepository, hooks *database.CommitHooks) error {
		favorite, err := repo.FindByID(ctx, cmd.FavoriteID)
		if err != nil {
			return err
		}

		// Authorization before any state change; a forbidden request schedules
		// no side effects
		if favorite.CustomerID != cmd.Principal.ID && !cmd.Principal.Superuser {
			return domain.ErrForbidden
		}

		// An already-inactive favorite is invisible, same as an unknown id
		if !favorite.Active {
			return domain.ErrNotFound
		}

		favorite.Active = false
		favorite.UpdatedAt = time.Now()
		if err := repo.Update(ctx, favorite); err != nil {
			return err
		}

		hooks.AfterCommit(func(ctx context.Context) {
			if _, err := h.views.Rebuild(ctx, favorite.CustomerID); err != nil {
				logger.Error(ctx).Err(err).Uint("customer_id", favorite.CustomerID).Msg("Post-commit view rebuild failed")
			}
			h.audit.PublishFavoriteEvent(ctx, kafka.FavoriteEvent{
				EventType:  kafka.EventTypeFavoriteDeactivated,
				FavoriteID: favorite.ID.String(),
				CustomerID: favorite.CustomerID,
				ProductID:  favorite.ProductID,
			})
		})
		return nil
	})
}
