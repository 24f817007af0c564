package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"favorites-service/pkg/cache"
	"favorites-service/pkg/logger"
)

// Cache keys mirror the remote catalog layout: one entry for the full listing,
// one entry per product id.
const (
	allProductsKey = "fakestore:all_products"
	productKeyFmt  = "fakestore:product:%d"
)

var (
	// ErrProductNotFound means the catalog has no such product (empty response body)
	ErrProductNotFound = errors.New("product not found in catalog")
	// ErrUpstreamUnavailable means the catalog call failed or returned a non-success status
	ErrUpstreamUnavailable = errors.New("catalog upstream unavailable")
)

var cacheOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_cache_operations_total",
		Help: "Catalog cache hits and misses by entry kind",
	},
	[]string{"entry", "result"},
)

func init() {
	prometheus.MustRegister(cacheOps)
}

// Client is a read-through cached client for the remote product catalog. It
// returns either a fresh-or-cached payload or an explicit failure; it never
// serves stale data past the TTL and never caches an error response.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      cache.Store
	ttl        time.Duration
}

// NewClient creates a catalog client backed by the given cache store
func NewClient(baseURL string, store cache.Store, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		store: store,
		ttl:   ttl,
	}
}

// GetAllProducts returns the full catalog listing, served from cache when the
// entry is still live
func (c *Client) GetAllProducts(ctx context.Context) (json.RawMessage, error) {
	if cached := c.fromCache(ctx, allProductsKey, "listing"); cached != nil {
		return cached, nil
	}

	body, status, err := c.fetch(ctx, c.baseURL+"/products")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, status)
	}

	c.toCache(ctx, allProductsKey, body)
	return body, nil
}

// GetProduct returns a single product payload by id. An empty response body
// signals not-found regardless of status; a non-success status with a body
// signals an upstream failure.
func (c *Client) GetProduct(ctx context.Context, productID int) (json.RawMessage, error) {
	key := fmt.Sprintf(productKeyFmt, productID)
	if cached := c.fromCache(ctx, key, "product"); cached != nil {
		return cached, nil
	}

	body, status, err := c.fetch(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, productID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrProductNotFound
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, status)
	}

	c.toCache(ctx, key, body)
	return body, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

// fromCache returns the cached payload or nil. Store failures are treated as
// misses; the remote catalog remains the source of truth.
func (c *Client) fromCache(ctx context.Context, key, entry string) json.RawMessage {
	value, err := c.store.Get(ctx, key)
	if err == nil {
		cacheOps.WithLabelValues(entry, "hit").Inc()
		logger.Debug(ctx).Str("cache_key", key).Msg("Catalog cache hit")
		return value
	}

	cacheOps.WithLabelValues(entry, "miss").Inc()
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Catalog cache read failed")
	}
	return nil
}

func (c *Client) toCache(ctx context.Context, key string, body []byte) {
	if err := c.store.Set(ctx, key, body, c.ttl); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache catalog response")
	}
}
