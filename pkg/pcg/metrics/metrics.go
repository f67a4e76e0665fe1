// Package metrics exposes Prometheus instrumentation for the generation
// pipeline: counts and timings per component, cache effectiveness, and
// binding-failure rates, mirroring the registration and handler pattern
// used for the game server's own metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every Prometheus collector the generation pipeline reports
// to, backed by a private registry so multiple Orchestrator instances in
// tests don't collide on the default global registry.
type Metrics struct {
	generations     *prometheus.CounterVec
	generationTime  *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	bindingFailures *prometheus.CounterVec
	cachedLocations prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers the full metric set.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ironfrontier_pcg_generations_total",
				Help: "Total number of content entities generated by component",
			},
			[]string{"component"},
		),
		generationTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ironfrontier_pcg_generation_duration_seconds",
				Help:    "Time spent generating a location's full content record",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"location_type"},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ironfrontier_pcg_cache_hits_total",
				Help: "Location content requests served from the orchestrator cache",
			},
		),
		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ironfrontier_pcg_cache_misses_total",
				Help: "Location content requests that triggered full generation",
			},
		),
		bindingFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ironfrontier_pcg_binding_failures_total",
				Help: "Non-fatal quest objective / dialogue binding failures by kind",
			},
			[]string{"kind"},
		),
		cachedLocations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ironfrontier_pcg_cached_locations",
				Help: "Number of locations currently memoized in the orchestrator cache",
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.generations,
		m.generationTime,
		m.cacheHits,
		m.cacheMisses,
		m.bindingFailures,
		m.cachedLocations,
	)

	return m
}

// Handler returns an HTTP handler exposing the metrics in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordGeneration increments the per-component generation counter.
func (m *Metrics) RecordGeneration(component string) {
	m.generations.WithLabelValues(component).Inc()
}

// RecordGenerationDuration observes a full location-generation pass.
func (m *Metrics) RecordGenerationDuration(locationType string, d time.Duration) {
	m.generationTime.WithLabelValues(locationType).Observe(d.Seconds())
}

// RecordCacheHit increments the cache-hit counter.
func (m *Metrics) RecordCacheHit() { m.cacheHits.Inc() }

// RecordCacheMiss increments the cache-miss counter.
func (m *Metrics) RecordCacheMiss() { m.cacheMisses.Inc() }

// RecordBindingFailure increments the binding-failure counter for the given
// kind ("quest_objective", "dialogue_snippet", "npc_template").
func (m *Metrics) RecordBindingFailure(kind string) {
	m.bindingFailures.WithLabelValues(kind).Inc()
}

// SetCachedLocations reports the current cache size.
func (m *Metrics) SetCachedLocations(n int) {
	m.cachedLocations.Set(float64(n))
}
