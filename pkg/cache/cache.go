// Package cache provides byte-level caching for computed artifacts.
//
// Layout computation and rendering are deterministic, so their results
// are cached keyed by a hash of the schedule state and the options that
// produced them. Three backends are provided:
//
//   - NullCache: disables caching
//   - FileCache: directory of files for CLI usage
//   - RedisCache: shared cache for server deployments
//
// Keys are built by a [Keyer] so every caller derives them the same way.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the expiration applied when callers pass no explicit TTL.
const DefaultTTL = 24 * time.Hour

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
