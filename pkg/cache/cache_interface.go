package cache

import (
	"context"
	"time"
)

// Cache is the contract for the shared ephemeral store. Implementations
// JSON-encode values; Get reports (found, error) so a miss is not an error.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found = false means cache miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// TTL returns the remaining lifetime of a key (negative when absent).
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
