package cache

import (
	"context"
	"time"
)

// Cache is the contract the console needs from its key-value store: session
// persistence and the member-number allocator. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get fetches a key and unmarshals it into dest.
	// found=false means a clean miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON-marshaled) under key with a TTL.
	// ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// SetNX stores value only if key does not exist yet.
	// Returns true when the write happened.
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	// Increment atomically bumps an integer key and returns the new value.
	Increment(ctx context.Context, key string) (int64, error)

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
