// Package metrics provides Prometheus metrics for the NamedCache boundary.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collection kinds used as label values.
const (
	KindMap = "map"
	KindSet = "set"
)

// Call outcomes used as label values.
const (
	OutcomeOK          = "ok"
	OutcomeAbsent      = "absent"
	OutcomeMiss        = "miss"
	OutcomeTagMismatch = "tag_mismatch"
	OutcomeAllocFailed = "alloc_failed"
	OutcomeRejected    = "rejected"
	OutcomeInternal    = "internal"
)

// Ownership-transfer allocation kinds used as label values.
const (
	AllocText    = "text"
	AllocEntries = "entries"
	AllocBuffer  = "buffer"
)

// Metrics holds all Prometheus metrics for the cache boundary.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Call metrics
	CallsTotal    *prometheus.CounterVec
	TagMismatches *prometheus.CounterVec

	// Ownership-transfer metrics
	OwnedAllocations *prometheus.CounterVec
	OwnedReleases    *prometheus.CounterVec
	AllocFailures    prometheus.Counter
	ExportSize       prometheus.Histogram

	// Registry metrics
	Collections *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewMetrics creates metrics with the given namespace on a private registry.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		CallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Total boundary calls by collection kind, operation and outcome",
		}, []string{"kind", "op", "outcome"}),
		TagMismatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tag_mismatches_total",
			Help:      "Typed reads that found a value of the other kind",
		}, []string{"accessor"}),

		OwnedAllocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "owned_allocations_total",
			Help:      "C heap blocks handed to the caller",
		}, []string{"type"}),
		OwnedReleases: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "owned_releases_total",
			Help:      "C heap blocks released through the free calls",
		}, []string{"type"}),
		AllocFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alloc_failures_total",
			Help:      "C heap allocations that returned NULL",
		}),
		ExportSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_entries",
			Help:      "Number of entries per numeric export",
			Buckets:   []float64{0, 1, 10, 100, 1000, 10000, 100000},
		}),

		Collections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "collections",
			Help:      "Current number of named collections",
		}, []string{"kind"}),

		registry: reg,
	}
}

// Gatherer returns the registry the metrics are registered on.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// RecordCall records one boundary call.
func (m *Metrics) RecordCall(kind, op, outcome string) {
	if m == nil {
		return
	}
	m.CallsTotal.WithLabelValues(kind, op, outcome).Inc()
}

// RecordTagMismatch records a typed read of the wrong kind.
func (m *Metrics) RecordTagMismatch(accessor string) {
	if m == nil {
		return
	}
	m.TagMismatches.WithLabelValues(accessor).Inc()
}

// RecordAlloc records a block handed to the caller, or a failed allocation.
func (m *Metrics) RecordAlloc(typ string, ok bool) {
	if m == nil {
		return
	}
	if !ok {
		m.AllocFailures.Inc()
		return
	}
	m.OwnedAllocations.WithLabelValues(typ).Inc()
}

// RecordRelease records a block released by the caller.
func (m *Metrics) RecordRelease(typ string) {
	if m == nil {
		return
	}
	m.OwnedReleases.WithLabelValues(typ).Inc()
}

// RecordExport records the size of a numeric export.
func (m *Metrics) RecordExport(n int) {
	if m == nil {
		return
	}
	m.ExportSize.Observe(float64(n))
}

// UpdateCollections updates the collection gauges.
func (m *Metrics) UpdateCollections(maps, sets int) {
	if m == nil {
		return
	}
	m.Collections.WithLabelValues(KindMap).Set(float64(maps))
	m.Collections.WithLabelValues(KindSet).Set(float64(sets))
}

// MetricsServer runs an HTTP server exposing /metrics endpoint.
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates a new metrics server on the given address.
func NewMetricsServer(addr string, m *Metrics) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Gatherer(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &MetricsServer{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// Handler returns the server's HTTP handler.
func (s *MetricsServer) Handler() http.Handler {
	return s.server.Handler
}

// StartAsync starts the metrics server in a goroutine. errFn, if not nil,
// receives the error that stopped the server.
func (s *MetricsServer) StartAsync(errFn func(error)) {
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed && errFn != nil {
			errFn(err)
		}
	}()
}

// Stop stops the metrics server.
func (s *MetricsServer) Stop() error {
	return s.server.Close()
}
