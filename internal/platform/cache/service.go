package cache

import (
	"context"
	"sync"
	"time"

	"skillhub/internal/platform/logger"
	"skillhub/internal/platform/metrics"
)

// Service owns the key namespace, the two TTL classes, and categorized
// invalidation. Backing-store failures never reach the caller: a failed
// read is a miss and a failed write is dropped, so a cache outage degrades
// the system to always-recompute. Every swallowed failure is logged and
// counted so the degradation stays visible.
type Service struct {
	store   Store
	log     *logger.Logger
	metrics *metrics.Collector

	softSkillsTTL time.Duration
	analysisTTL   time.Duration

	// Capability keys are minted on demand; remember them so that an
	// "all" invalidation can reach every key this service ever issued.
	mu             sync.Mutex
	capabilityKeys map[string]struct{}
}

func NewService(store Store, log *logger.Logger, collector *metrics.Collector, softSkillsTTL, analysisTTL time.Duration) *Service {
	return &Service{
		store:          store,
		log:            log,
		metrics:        collector,
		softSkillsTTL:  softSkillsTTL,
		analysisTTL:    analysisTTL,
		capabilityKeys: make(map[string]struct{}),
	}
}

// Get returns the cached value for key, or ok=false on a miss. Expired
// entries and backing-store failures both read as misses.
func (s *Service) Get(ctx context.Context, key string) ([]byte, bool) {
	value, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache read failed, treating as miss", "key", key, "err", err)
		s.metrics.CacheError("get")
		return nil, false
	}
	if !ok {
		s.metrics.CacheMiss(key)
		return nil, false
	}
	s.metrics.CacheHit(key)
	return value, true
}

// Set stores value under key, unconditionally replacing any prior entry
// and resetting its expiry. The TTL class follows from the key: the
// soft-skills catalog gets the long TTL, everything else the analysis TTL.
func (s *Service) Set(ctx context.Context, key string, value []byte) {
	ttl := s.analysisTTL
	if key == KeySoftSkills {
		ttl = s.softSkillsTTL
	}
	s.trackCapabilityKey(key)
	if err := s.store.Set(ctx, key, value, ttl); err != nil {
		s.log.Warn("cache write failed, dropping entry", "key", key, "err", err)
		s.metrics.CacheError("set")
	}
}

// Invalidate removes the keys belonging to category. Deleting a key that
// was never set is a no-op. Unlike Get/Set, a backing-store failure is
// returned: an admin asking for invalidation must not be told it
// succeeded while stale entries remain.
func (s *Service) Invalidate(ctx context.Context, category Category) error {
	var keys []string
	switch category {
	case CategorySkills:
		keys = []string{KeySoftSkills}
	case CategoryAnalysis:
		keys = []string{KeyAdminAnalysis, KeyDistributions, KeyRankings}
	case CategoryAll:
		keys = []string{KeySoftSkills, KeyAdminAnalysis, KeyDistributions, KeyRankings}
		s.mu.Lock()
		for key := range s.capabilityKeys {
			keys = append(keys, key)
		}
		s.mu.Unlock()
	default:
		return ErrUnknownCategory
	}

	if err := s.store.Delete(ctx, keys...); err != nil {
		s.log.Error("cache invalidation failed", "category", category, "err", err)
		s.metrics.CacheError("invalidate")
		return err
	}
	if category == CategoryAll {
		// Forget a capability key only once its entry is confirmed gone;
		// a failed delete must leave the registry intact so a retry can
		// still reach every issued key.
		s.mu.Lock()
		for _, key := range keys {
			delete(s.capabilityKeys, key)
		}
		s.mu.Unlock()
	}
	s.metrics.Invalidation(string(category))
	s.log.Info("cache invalidated", "category", category, "keys", len(keys))
	return nil
}

func (s *Service) trackCapabilityKey(key string) {
	if len(key) <= len(capabilityKeyPrefix) || key[:len(capabilityKeyPrefix)] != capabilityKeyPrefix {
		return
	}
	s.mu.Lock()
	s.capabilityKeys[key] = struct{}{}
	s.mu.Unlock()
}
