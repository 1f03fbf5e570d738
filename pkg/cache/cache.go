// Package cache provides content-addressed caching for rendered artifacts.
//
// The render pipeline uses it to skip the expensive Graphviz SVG stage when
// the same diagram is rendered twice with the same options. Keys are derived
// from the input bytes and render options via [Key], so a cache entry can
// never serve stale output: any change to the input produces a new key.
//
// Two implementations ship with the package: [FileCache] persists entries
// under a directory (the CLI keeps it in the user cache dir), and
// [NullCache] disables caching entirely.
package cache

import (
	"context"
	"time"
)

// TTLArtifact bounds how long rendered artifacts stay on disk. Keys are
// content-addressed, so entries never serve stale data; the TTL exists
// only to reclaim disk space.
const TTLArtifact = 7 * 24 * time.Hour

// Cache stores opaque artifact bytes under string keys.
//
// Get reports a miss with hit == false and a nil error; errors are reserved
// for real failures (I/O problems, not absent keys). Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the value stored under key. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
