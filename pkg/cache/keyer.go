package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/tourney/pkg/observability"
)

// Keyer derives cache keys.
type Keyer interface {
	// ReportKey returns the key of the benchmark report for a normalised
	// configuration. cfg must encode to JSON deterministically.
	ReportKey(cfg any) string
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ReportKey implements Keyer.
func (DefaultKeyer) ReportKey(cfg any) string { return hashKey("report", cfg) }

// ScopedKeyer wraps a Keyer with a prefix, giving each scope its own
// namespace.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ReportKey implements Keyer.
func (k *ScopedKeyer) ReportKey(cfg any) string { return k.prefix + k.inner.ReportKey(cfg) }

// GetJSON looks key up and decodes it into v. A corrupt entry counts as a
// miss. keyType labels the lookup for the cache hooks.
func GetJSON(ctx context.Context, c Cache, keyType, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false, nil
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, keyType, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", keyType, err)
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
	return nil
}
