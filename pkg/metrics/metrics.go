// Package metrics exposes prometheus instrumentation for the resilience
// engine: sweep and trial counters, duration histograms, breakdown-search
// statistics, and graph size gauges.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the engine.
type Registry struct {
	// Sweep metrics
	SweepsTotal   *prometheus.CounterVec
	SweepDuration *prometheus.HistogramVec
	TrialsTotal   *prometheus.CounterVec

	// Tier comparison metrics
	TierReductionsTotal prometheus.Counter

	// Breakdown search metrics
	BreakdownSearchesTotal prometheus.Counter
	BreakdownIterations    prometheus.Histogram
	BreakdownDeletedNodes  prometheus.Histogram

	// Graph metrics
	GraphNodes prometheus.Gauge
	GraphEdges prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all engine metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.SweepsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_sweeps_total",
			Help: "Total number of failure-reachability sweeps run",
		},
		[]string{"scale", "attack"},
	)

	r.SweepDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resilience_sweep_duration_seconds",
			Help:    "Duration of a single sweep across all rho values",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 600},
		},
		[]string{"scale"},
	)

	r.TrialsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_trials_total",
			Help: "Total number of thinned subgraphs produced and scored",
		},
		[]string{"scale"},
	)

	r.TierReductionsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "resilience_tier_reductions_total",
			Help: "Total number of tier-truncated derivative graphs built",
		},
	)

	r.BreakdownSearchesTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "resilience_breakdown_searches_total",
			Help: "Total number of breakdown-threshold searches run",
		},
	)

	r.BreakdownIterations = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resilience_breakdown_iterations",
			Help:    "Deletion batches per breakdown search",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	r.BreakdownDeletedNodes = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resilience_breakdown_deleted_nodes",
			Help:    "Cumulative nodes deleted at breakdown",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
	)

	r.GraphNodes = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_graph_nodes",
			Help: "Nodes in the canonical analysis graph",
		},
	)

	r.GraphEdges = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_graph_edges",
			Help: "Edges in the canonical analysis graph",
		},
	)

	return r
}

// Handler returns an HTTP handler serving the registry in the prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// Default returns the process-wide registry.
func Default() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
