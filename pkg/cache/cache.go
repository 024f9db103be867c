// Package cache stores rendered skyline artifacts so a repeated render with
// the same scene, seed and format skips drawing.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI with --cache
//   - [MemoryCache]: a bounded LRU, used by the HTTP server
//   - [RedisCache]: a shared Redis instance, for several server replicas
//   - [NullCache]: stores nothing, the CLI default unless --cache is set
//
// All backends report a miss as (nil, false, nil). Expired entries are misses.
//
// # Keys
//
// Keys come from a [Keyer] so that every backend sees the same layout:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(sceneHash, cache.ArtifactKeyOpts{Format: "svg"})
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored data and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
