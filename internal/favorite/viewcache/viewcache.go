package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"favorites-service/internal/favorite/domain"
	"favorites-service/pkg/cache"
	"favorites-service/pkg/logger"
)

// Per-user cache key for the serialized favorites view. The prefix matches the
// catalog cache namespace the view is derived from.
const userKeyFmt = "fakestore:all_products:%d"

var viewCacheOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "favorites_view_cache_operations_total",
		Help: "Favorites view cache hits, misses and invalidations",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(viewCacheOps)
}

// FavoriteView is the serialized form of an active favorite as served to
// clients, including the product snapshot captured at favorite-time
type FavoriteView struct {
	ID          uuid.UUID      `json:"id"`
	Customer    uint           `json:"customer"`
	ProductID   int            `json:"product_id"`
	ProductData domain.JSONMap `json:"product_data"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func newFavoriteView(f domain.Favorite) FavoriteView {
	return FavoriteView{
		ID:          f.ID,
		Customer:    f.CustomerID,
		ProductID:   f.ProductID,
		ProductData: f.ProductData,
		Active:      f.Active,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// ViewCache is the per-customer derived cache of serialized active favorites.
// It is a projection over the favorite store, never the source of truth; an
// absent entry is rebuilt synchronously and a write always schedules a rebuild
// after its transaction commits.
type ViewCache struct {
	store cache.Store
	repo  domain.FavoriteRepository
	ttl   time.Duration
}

// New creates a view cache over the given store and repository
func New(store cache.Store, repo domain.FavoriteRepository, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &ViewCache{store: store, repo: repo, ttl: ttl}
}

// Get returns the cached view for a customer. The second return value is false
// on a miss; a miss is never an error, the caller rebuilds.
func (v *ViewCache) Get(ctx context.Context, customerID uint) ([]FavoriteView, bool) {
	key := fmt.Sprintf(userKeyFmt, customerID)

	data, err := v.store.Get(ctx, key)
	if err != nil {
		viewCacheOps.WithLabelValues("miss").Inc()
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn(ctx).Err(err).Uint("customer_id", customerID).Msg("View cache read failed")
		}
		return nil, false
	}

	var views []FavoriteView
	if err := json.Unmarshal(data, &views); err != nil {
		// Undecodable entries are treated as misses and overwritten by the rebuild
		viewCacheOps.WithLabelValues("miss").Inc()
		logger.Warn(ctx).Err(err).Uint("customer_id", customerID).Msg("View cache entry corrupt")
		return nil, false
	}

	viewCacheOps.WithLabelValues("hit").Inc()
	return views, true
}

// Rebuild queries the customer's active favorites newest-first, serializes
// them with their stored product snapshots and replaces the cache entry. The
// rebuilt list is returned directly so the triggering caller observes it.
func (v *ViewCache) Rebuild(ctx context.Context, customerID uint) ([]FavoriteView, error) {
	favorites, err := v.repo.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild favorites view: %w", err)
	}

	views := make([]FavoriteView, 0, len(favorites))
	for _, f := range favorites {
		views = append(views, newFavoriteView(f))
	}

	data, err := json.Marshal(views)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize favorites view: %w", err)
	}

	key := fmt.Sprintf(userKeyFmt, customerID)
	if err := v.store.Set(ctx, key, data, v.ttl); err != nil {
		// The rebuilt value is still returned; the cache will repopulate on a later read
		logger.Warn(ctx).Err(err).Uint("customer_id", customerID).Msg("Failed to store favorites view")
	}

	viewCacheOps.WithLabelValues("rebuild").Inc()
	return views, nil
}

// Invalidate removes the customer's cache entry unconditionally. Used on
// account deletion, where a rebuild has nothing to rebuild into.
func (v *ViewCache) Invalidate(ctx context.Context, customerID uint) error {
	key := fmt.Sprintf(userKeyFmt, customerID)
	if err := v.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to invalidate favorites view: %w", err)
	}

	viewCacheOps.WithLabelValues("invalidate").Inc()
	return nil
}
