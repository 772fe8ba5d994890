package shared

import (
	"context"
	"time"
)

// ResultCache is a key-value store with per-entry expiry.
// Implementations must treat expired entries as absent.
type ResultCache interface {
	// Get returns the cached value and true, or nil and false when the key is
	// missing or expired
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. A non-positive ttl is a no-op.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key if present
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache
	Close() error
}
