// Package cache is the TTL key-value layer in front of the analysis
// aggregator. Values are opaque byte slices; callers own serialization.
package cache

import (
	"context"
	"errors"
	"time"
)

// Well-known cache keys. Capability-scoped analyses use CapabilityKey.
const (
	KeySoftSkills    = "skills:soft"
	KeyAdminAnalysis = "analysis:admin"
	KeyDistributions = "analysis:distributions"
	KeyRankings      = "analysis:rankings"
)

const capabilityKeyPrefix = "analysis:capability:"

// CapabilityKey returns the cache slot for a capability-scoped analysis.
// The same capability always maps to the same key and distinct
// capabilities never collide.
func CapabilityKey(capability string) string {
	return capabilityKeyPrefix + capability
}

// Category groups keys for bulk invalidation.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryAnalysis Category = "analysis"
	CategorySkills   Category = "skills"
)

var ErrUnknownCategory = errors.New("unknown cache category")

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryAll, CategoryAnalysis, CategorySkills:
		return Category(s), nil
	}
	return "", ErrUnknownCategory
}

// Store is a backing key-value store with per-entry TTL. Implementations
// must treat an expired entry as absent and replace values atomically.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
