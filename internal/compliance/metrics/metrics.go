package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance module.
type Metrics struct {
	// Check outcomes by overall status and risk level
	CheckOutcome *prometheus.CounterVec

	// Overall check latency including registry fetches
	CheckLatency prometheus.Histogram

	// Registry fetch latency by operation
	RegistryLatency *prometheus.HistogramVec

	// Cache hits and misses by entry kind
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Checks answered in degraded (rule-table-only) mode
	DegradedChecks prometheus.Counter
}

// New creates a new Metrics instance with all compliance module metrics registered.
func New() *Metrics {
	return &Metrics{
		CheckOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phytoguard_compliance_checks_total",
			Help: "Total compliance checks by overall status and risk level",
		}, []string{"status", "risk_level"}),

		CheckLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "phytoguard_compliance_check_duration_seconds",
			Help:    "Duration of full compliance checks including registry fetches",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		RegistryLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phytoguard_registry_fetch_duration_seconds",
			Help:    "Duration of bulk registry fetches by operation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}), // operation: "usage_rows", "hazard_phrases"

		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phytoguard_cache_hits_total",
			Help: "Cache hits by entry kind",
		}, []string{"kind"}), // kind: "report", "profiles"

		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phytoguard_cache_misses_total",
			Help: "Cache misses by entry kind",
		}, []string{"kind"}),

		DegradedChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phytoguard_compliance_degraded_checks_total",
			Help: "Checks answered from rule tables only because the registry was unreachable",
		}),
	}
}

// IncrementOutcome records a check outcome.
func (m *Metrics) IncrementOutcome(status, riskLevel string) {
	if m != nil {
		m.CheckOutcome.WithLabelValues(status, riskLevel).Inc()
	}
}

// ObserveCheckLatency records the total check duration.
func (m *Metrics) ObserveCheckLatency(d time.Duration) {
	if m != nil {
		m.CheckLatency.Observe(d.Seconds())
	}
}

// ObserveRegistryLatency records the duration of one bulk registry fetch.
func (m *Metrics) ObserveRegistryLatency(operation string, d time.Duration) {
	if m != nil {
		m.RegistryLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// RecordCacheHit records a cache hit for an entry kind.
func (m *Metrics) RecordCacheHit(kind string) {
	if m != nil {
		m.CacheHits.WithLabelValues(kind).Inc()
	}
}

// RecordCacheMiss records a cache miss for an entry kind.
func (m *Metrics) RecordCacheMiss(kind string) {
	if m != nil {
		m.CacheMisses.WithLabelValues(kind).Inc()
	}
}

// IncrementDegraded records a degraded-mode check.
func (m *Metrics) IncrementDegraded() {
	if m != nil {
		m.DegradedChecks.Inc()
	}
}
