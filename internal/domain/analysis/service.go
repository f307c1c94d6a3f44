package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"skillhub/internal/domain/assessment"
	"skillhub/internal/platform/cache"
	"skillhub/internal/platform/logger"
	"skillhub/internal/platform/metrics"
)

// Config tunes the aggregator. Values come from the process configuration;
// nothing here is hard-coded into the calculator.
type Config struct {
	TopSkillsLimit   int
	Thresholds       StatusThresholds
	FetchConcurrency int
}

// Service produces the analysis views on demand. Each view checks the
// cache first, recomputes from the assessment store on a miss, and writes
// the result back with the configured TTL. Concurrent recomputations of
// the same key may race; last write wins, which is acceptable because both
// derive from the same underlying data.
type Service struct {
	store   assessment.StoreAPI
	cache   *cache.Service
	log     *logger.Logger
	metrics *metrics.Collector
	cfg     Config
	now     func() time.Time
}

func NewService(store assessment.StoreAPI, cacheSvc *cache.Service, log *logger.Logger, collector *metrics.Collector, cfg Config) *Service {
	if cfg.TopSkillsLimit <= 0 {
		cfg.TopSkillsLimit = 5
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = 8
	}
	return &Service{
		store:   store,
		cache:   cacheSvc,
		log:     log,
		metrics: collector,
		cfg:     cfg,
		now:     time.Now,
	}
}

// AdminAnalysis returns the organization-wide skills matrix.
func (s *Service) AdminAnalysis(ctx context.Context) (AdminAnalysis, error) {
	var result AdminAnalysis
	if s.fromCache(ctx, cache.KeyAdminAnalysis, &result) {
		return result, nil
	}
	start := s.now()
	result, err := s.computeAdminAnalysis(ctx)
	if err != nil {
		return AdminAnalysis{}, err
	}
	s.metrics.ObserveCompute("admin", s.now().Sub(start))
	s.toCache(ctx, cache.KeyAdminAnalysis, result)
	return result, nil
}

// Distributions returns the business-unit skill distributions and the
// grade-level head counts.
func (s *Service) Distributions(ctx context.Context) (Distributions, error) {
	var result Distributions
	if s.fromCache(ctx, cache.KeyDistributions, &result) {
		return result, nil
	}
	start := s.now()
	result, err := s.computeDistributions(ctx)
	if err != nil {
		return Distributions{}, err
	}
	s.metrics.ObserveCompute("distributions", s.now().Sub(start))
	s.toCache(ctx, cache.KeyDistributions, result)
	return result, nil
}

// Rankings returns the employee leaderboard.
func (s *Service) Rankings(ctx context.Context) (Rankings, error) {
	var result Rankings
	if s.fromCache(ctx, cache.KeyRankings, &result) {
		return result, nil
	}
	start := s.now()
	result, err := s.computeRankings(ctx)
	if err != nil {
		return Rankings{}, err
	}
	s.metrics.ObserveCompute("rankings", s.now().Sub(start))
	s.toCache(ctx, cache.KeyRankings, result)
	return result, nil
}

// OrganizationAnalysis returns the top-skills/top-gaps summary for one
// capability. An empty capability aggregates the whole organization under
// the "All" slot.
func (s *Service) OrganizationAnalysis(ctx context.Context, capability string) (OrganizationAnalysis, error) {
	capability = strings.TrimSpace(capability)
	if capability == "" {
		capability = CapabilityAll
	}
	key := cache.CapabilityKey(capability)

	var result OrganizationAnalysis
	if s.fromCache(ctx, key, &result) {
		return result, nil
	}
	start := s.now()
	result, err := s.computeOrganizationAnalysis(ctx, capability)
	if err != nil {
		return OrganizationAnalysis{}, err
	}
	s.metrics.ObserveCompute("organization", s.now().Sub(start))
	s.toCache(ctx, key, result)
	return result, nil
}

// EmployeeAnalysis returns one employee's merged skills matrix. The email
// is normalized to lower case before lookup; the reconciled record is
// mandatory and its absence surfaces as assessment.ErrNotFound.
func (s *Service) EmployeeAnalysis(ctx context.Context, email string) (EmployeeAnalysis, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return EmployeeAnalysis{}, fmt.Errorf("employee analysis: %w", assessment.ErrNotFound)
	}
	return s.computeEmployeeAnalysis(ctx, email)
}

// SoftSkills returns the soft-skill catalog through the long-TTL cache
// slot.
func (s *Service) SoftSkills(ctx context.Context) ([]assessment.SoftSkillDefinition, error) {
	var catalog []assessment.SoftSkillDefinition
	if s.fromCache(ctx, cache.KeySoftSkills, &catalog) {
		return catalog, nil
	}
	catalog, err := s.store.ListSoftSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("soft skills: %w", err)
	}
	s.toCache(ctx, cache.KeySoftSkills, catalog)
	return catalog, nil
}

// InvalidateCache clears one cache category on behalf of an external
// trigger (data-sync completion, admin action).
func (s *Service) InvalidateCache(ctx context.Context, category string) error {
	parsed, err := cache.ParseCategory(category)
	if err != nil {
		return err
	}
	return s.cache.Invalidate(ctx, parsed)
}

func (s *Service) fromCache(ctx context.Context, key string, out any) bool {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Warn("cache entry undecodable, recomputing", "key", key, "err", err)
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Error("marshal for cache failed", "key", key, "err", err)
		return
	}
	s.cache.Set(ctx, key, raw)
}
