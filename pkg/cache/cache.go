// Package cache stores enrichment records between runs.
//
// Two layers live here:
//
//   - [Cache] is a byte-level backend: [FileCache] (the default, one JSON
//     file per entry), [RedisCache] (shared across machines), and
//     [NullCache] (caching disabled).
//   - [Entries] is the typed Entry Cache used by enrichment. It serializes
//     records, tolerates corrupt or unreadable entries, and reports every
//     lookup to an injected [observability.CacheHooks].
//
// # Layout on disk
//
// With the default keyer a FileCache rooted at .cursecache holds:
//
//	.cursecache/mods/238222.json
//	.cursecache/files/238222_4712866.json
//
// Entries are written whole and never mutated in place. Nothing in the diff
// path deletes them; `packdiff cache clear` does.
//
// [observability.CacheHooks]: github.com/matzehuels/packdiff/pkg/observability.CacheHooks
package cache

import (
	"context"
	"time"
)

// Cache is a byte-level key-value backend.
type Cache interface {
	// Get returns the data stored under key. A missing entry is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous entry.
	// ttl <= 0 means no expiry where the backend supports one.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
