package query

import (
	"context"

	"github.com/google/uuid"

	"favorites-service/internal/favorite/domain"
	"favorites-service/pkg/auth"
)

// GetFavoriteQuery represents the query for a single favorite by id
type GetFavoriteQuery struct {
	FavoriteID uuid.UUID
	Principal  auth.Principal
}

// GetFavoriteHandler retrieves a favorite by id. Inactive favorites are
// reported as not found even to their owner, indistinguishable from ids that
// never existed.
type GetFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewGetFavoriteHandler creates a new get favorite handler
func NewGetFavoriteHandler(repo domain.FavoriteRepository) *GetFavoriteHandler {
	return &GetFavoriteHandler{repo: repo}
}

// Handle executes the get favorite query
func (h *GetFavoriteHandler) Handle(ctx context.Context, q GetFavoriteQuery) (*domain.Favorite, error) {
	favorite, err := h.repo.FindByID(ctx, q.FavoriteID)
	if err != nil {
		return nil, err
	}

	if favorite.CustomerID != q.Principal.ID && !q.Principal.Superuser {
		return nil, domain.ErrForbidden
	}

	if !favorite.Active {
		return nil, domain.ErrNotFound
	}

	return favorite, nil
}
