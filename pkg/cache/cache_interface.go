package cache

import (
	"context"
	"time"
)

// Cache is the contract the repositories and the catalog summary use.
// Implementations: Redis (infrastructure/cache) and Noop (tests, memory store).
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found is false on a miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded) with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern (e.g. "author:*").
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
