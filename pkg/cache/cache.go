// Package cache stores exported containers so repeated deterministic
// exports of the same design skip the encoder.
//
// Three backends implement [Cache]: [NullCache] (disabled), [FileCache]
// (one zstd-compressed file per entry under a directory) and [RedisCache]
// (a shared Redis instance, also zstd-compressed). Keys come from a
// [Keyer] and are derived from a blake3 hash of the canonical design.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// TTLContainer is the default lifetime of a cached container.
const TTLContainer = 7 * 24 * time.Hour

// Backend names accepted by the configuration.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)
