// Package metrics holds the Prometheus collectors for the roster service.
// All Record methods are safe on a nil *Metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheStale   = "stale"
	CacheCorrupt = "corrupt"
	CacheError   = "error"
)

type Metrics struct {
	CacheLookupsTotal     *prometheus.CounterVec
	CacheWriteErrorsTotal *prometheus.CounterVec

	UpstreamRequestsTotal *prometheus.CounterVec
	UpstreamSeconds       *prometheus.HistogramVec

	ReconcileSeconds    prometheus.Histogram
	ReconcileRecords    *prometheus.GaugeVec
	InvariantViolations prometheus.Counter
	FallbacksTotal      *prometheus.CounterVec
	SnapshotsDiscarded  prometheus.Counter
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_cache_lookups_total",
				Help: "Cache lookups by namespace and result",
			},
			[]string{"namespace", "result"},
		),
		CacheWriteErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_cache_write_errors_total",
				Help: "Failed cache writes by namespace",
			},
			[]string{"namespace"},
		),
		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_upstream_requests_total",
				Help: "Upstream requests by source, endpoint and status",
			},
			[]string{"source", "endpoint", "status"},
		),
		UpstreamSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roster_upstream_seconds",
				Help:    "Upstream request latency",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
			},
			[]string{"source", "endpoint"},
		),
		ReconcileSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "roster_reconcile_seconds",
				Help:    "Time spent reconciling registry members with booking accounts",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
			},
		),
		ReconcileRecords: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "roster_reconcile_records",
				Help: "Records produced by the last reconciliation, by outcome",
			},
			[]string{"outcome"},
		),
		InvariantViolations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "roster_reconcile_invariant_violations_total",
				Help: "Reconciliation runs that broke the account partition",
			},
		),
		FallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_fallbacks_total",
				Help: "Responses served from a fallback dataset",
			},
			[]string{"dataset", "source"},
		),
		SnapshotsDiscarded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "roster_snapshots_discarded_total",
				Help: "Fetch results dropped because a newer cycle had already been applied",
			},
		),
	}
}

func (m *Metrics) RecordCacheLookup(namespace, result string) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(namespace, result).Inc()
}

func (m *Metrics) RecordCacheWriteError(namespace string) {
	if m == nil {
		return
	}
	m.CacheWriteErrorsTotal.WithLabelValues(namespace).Inc()
}

func (m *Metrics) RecordUpstream(source, endpoint, status string, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(source, endpoint, status).Inc()
	m.UpstreamSeconds.WithLabelValues(source, endpoint).Observe(seconds)
}

// RecordReconcile stores the outcome counts of the latest run.
func (m *Metrics) RecordReconcile(seconds float64, registry, linked, strong, fallback, bookingOnly int) {
	if m == nil {
		return
	}
	m.ReconcileSeconds.Observe(seconds)
	m.ReconcileRecords.WithLabelValues("registry").Set(float64(registry))
	m.ReconcileRecords.WithLabelValues("linked").Set(float64(linked))
	m.ReconcileRecords.WithLabelValues("strong").Set(float64(strong))
	m.ReconcileRecords.WithLabelValues("fallback").Set(float64(fallback))
	m.ReconcileRecords.WithLabelValues("booking_only").Set(float64(bookingOnly))
}

func (m *Metrics) RecordInvariantViolation() {
	if m == nil {
		return
	}
	m.InvariantViolations.Inc()
}

func (m *Metrics) RecordFallback(dataset, source string) {
	if m == nil {
		return
	}
	m.FallbacksTotal.WithLabelValues(dataset, source).Inc()
}

func (m *Metrics) RecordSnapshotDiscarded() {
	if m == nil {
		return
	}
	m.SnapshotsDiscarded.Inc()
}
