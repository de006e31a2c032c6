package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "cache").Logger()

// ViewCache is a generic JSON-backed redis cache for read model projections.
// Bind it to a specific view type T; each instance holds a redis client and
// an optional TTL (pass 0 for keys that should not expire).
//
// A nil *ViewCache is valid and disables caching: Get always misses, Set and
// Delete are no-ops. Services hold caches as optional collaborators.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewViewCache creates a ViewCache backed by the provided redis client.
func NewViewCache[T any](client *goredis.Client, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, ttl: ttl}
}

// Get retrieves and unmarshals a value from redis.
// Returns (nil, false) on any miss or deserialisation error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set marshals value and stores it in redis under key.
// Errors are logged rather than returned — a cache write miss is non-fatal.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("marshal error")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("write error")
	}
}

// Delete removes a key from redis.
func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("delete error")
	}
}
