// Package metrics exposes Prometheus instrumentation for the analysis core.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	cacheErrors        *prometheus.CounterVec
	cacheInvalidations *prometheus.CounterVec
	computeDuration    *prometheus.HistogramVec
}

func New(namespace string) *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Cache hits by key.",
	}, []string{"key"})
	c.cacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Cache misses by key, expired entries included.",
	}, []string{"key"})
	c.cacheErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "errors_total",
		Help:      "Backing-store failures swallowed by the cache layer.",
	}, []string{"op"})
	c.cacheInvalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "invalidations_total",
		Help:      "Cache invalidations by category.",
	}, []string{"category"})
	c.computeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "analysis",
		Name:      "compute_seconds",
		Help:      "Wall time spent recomputing an analysis view on cache miss.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"view"})

	c.registry.MustRegister(
		c.cacheHits,
		c.cacheMisses,
		c.cacheErrors,
		c.cacheInvalidations,
		c.computeDuration,
	)
	return c
}

func (c *Collector) CacheHit(key string)  { c.cacheHits.WithLabelValues(key).Inc() }
func (c *Collector) CacheMiss(key string) { c.cacheMisses.WithLabelValues(key).Inc() }
func (c *Collector) CacheError(op string) { c.cacheErrors.WithLabelValues(op).Inc() }

func (c *Collector) Invalidation(category string) {
	c.cacheInvalidations.WithLabelValues(category).Inc()
}

func (c *Collector) ObserveCompute(view string, d time.Duration) {
	c.computeDuration.WithLabelValues(view).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
