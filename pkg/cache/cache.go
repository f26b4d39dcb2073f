// Package cache stores benchmark reports between runs.
//
// A benchmark over many trials can take minutes; its result depends only on
// the normalised configuration and the program version. Reports are cached
// under a key derived from both so that re-running an unchanged
// configuration is instant.
//
// # Backends
//
//   - [FileCache]: JSON envelopes with optional expiry under a directory,
//     sharded by the first two hex digits of the key hash.
//   - [NullCache]: never stores anything; used by --no-cache.
//
// # Keys
//
// A [Keyer] derives keys. [DefaultKeyer] hashes the JSON encoding of its
// inputs with SHA-256; [ScopedKeyer] prefixes another keyer, which the CLI
// uses to keep reports of different program versions apart.
//
// [GetJSON] and [SetJSON] wrap a Cache with JSON encoding and report hits,
// misses and writes to the observability cache hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
