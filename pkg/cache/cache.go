package cache

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL is the system-wide cache entry lifetime
const DefaultTTL = 5 * time.Minute

// ErrCacheMiss is returned by Get when a key is absent or has expired
var ErrCacheMiss = errors.New("cache miss")

// Store is the cache capability injected into the caching layers. Entries are
// ephemeral and self-expire; a miss is never a failure.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
