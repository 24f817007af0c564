package query

import (
	"context"

	"favorites-service/internal/favorite/viewcache"
)

// ListFavoritesQuery represents the query for a customer's active favorites
type ListFavoritesQuery struct {
	CustomerID uint
}

// ListFavoritesHandler serves the favorites list from the view cache,
// rebuilding synchronously on a miss so the caller always observes a value
// consistent with committed storage
type ListFavoritesHandler struct {
	views *viewcache.ViewCache
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(views *viewcache.ViewCache) *ListFavoritesHandler {
	return &ListFavoritesHandler{views: views}
}

// Handle executes the list favorites query
func (h *ListFavoritesHandler) Handle(ctx context.Context, q ListFavoritesQuery) ([]viewcache.FavoriteView, error) {
	if views, ok := h.views.Get(ctx, q.CustomerID); ok {
		return views, nil
	}

	return h.views.Rebuild(ctx, q.CustomerID)
}
