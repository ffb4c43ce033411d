package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache is a typed TTL window over a single store key. An entry is valid
// iff now - timestamp < ttl; expired entries are left in place until
// overwritten. Storage failures are logged and swallowed so a cache
// problem never aborts the fetch flow that called it.
type Cache[T any] struct {
	store *Store
	key   string
	ttl   time.Duration
	now   func() time.Time
}

// NewCache creates a cache over the given key with a fixed TTL.
func NewCache[T any](s *Store, key string, ttl time.Duration) *Cache[T] {
	return &Cache[T]{store: s, key: key, ttl: ttl, now: time.Now}
}

// Get returns the cached value if present and unexpired.
func (c *Cache[T]) Get(ctx context.Context) (T, bool) {
	var zero T

	value, ts, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		log.Warn().Err(err).Str("key", c.key).Msg("cache read failed")
		return zero, false
	}
	if !ok {
		return zero, false
	}

	age := c.now().Sub(ts)
	if age >= c.ttl {
		return zero, false
	}

	var data T
	if err := json.Unmarshal([]byte(value), &data); err != nil {
		log.Warn().Err(err).Str("key", c.key).Msg("cache entry unreadable")
		return zero, false
	}

	log.Debug().Str("key", c.key).Dur("remaining", c.ttl-age).Msg("using cached data")
	return data, true
}

// Set stores data with the current timestamp, overwriting any prior
// entry. Failures are logged, never returned.
func (c *Cache[T]) Set(ctx context.Context, data T) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Str("key", c.key).Msg("cache serialization failed")
		return
	}
	if err := c.store.Put(ctx, c.key, string(raw), c.now()); err != nil {
		log.Warn().Err(err).Str("key", c.key).Msg("cache write failed")
	}
}

// Clear removes the entry.
func (c *Cache[T]) Clear(ctx context.Context) {
	if err := c.store.Delete(ctx, c.key); err != nil {
		log.Warn().Err(err).Str("key", c.key).Msg("cache clear failed")
	}
}
