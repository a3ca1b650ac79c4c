// Package metrics provides Prometheus metrics for the SSAA Navigator service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the navigator service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Store metrics - round trips to the backing row store
	storeRequests        *prometheus.CounterVec
	storeRequestDuration *prometheus.HistogramVec
	storeErrors          *prometheus.CounterVec

	// Snapshot metrics
	snapshotRuns         prometheus.Counter
	snapshotRowsAppended prometheus.Counter
	snapshotRowsFailed   prometheus.Counter

	// Portfolio metrics
	projectsTracked  prometheus.Gauge
	quadrantProjects *prometheus.GaugeVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// Validation metrics
	validationFailures prometheus.Counter

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "navigator",
		subsystem:        "portfolio",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.storeRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_requests_total",
		Help:      "Total row-store requests by table, operation and outcome",
	}, []string{"table", "op", "outcome"})

	m.storeRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_request_duration_milliseconds",
		Help:      "Histogram of row-store request latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"table", "op"})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total row-store failures by table and error kind",
	}, []string{"table", "kind"})

	m.snapshotRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_runs_total",
		Help:      "Total snapshot operations triggered",
	})

	m.snapshotRowsAppended = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rows_appended_total",
		Help:      "Total history rows appended by snapshot operations",
	})

	m.snapshotRowsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rows_failed_total",
		Help:      "Total history row appends that failed during snapshots",
	})

	m.projectsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projects_tracked",
		Help:      "Number of projects currently tracked in the evaluations table",
	})

	m.quadrantProjects = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "quadrant_projects",
		Help:      "Number of projects classified into each quadrant",
	}, []string{"quadrant"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total error responses by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.validationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Total update requests rejected by rating or hours validation",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers operating on the global manager.

// RecordStoreRequest records one row-store round trip.
func RecordStoreRequest(table, op, outcome string) {
	globalManager.storeRequests.WithLabelValues(table, op, outcome).Inc()
}

// RecordStoreRequestDuration records the latency of a row-store round trip.
func RecordStoreRequestDuration(table, op string, latencyMs float64) {
	globalManager.storeRequestDuration.WithLabelValues(table, op).Observe(latencyMs)
}

// RecordStoreError records a row-store failure by kind.
func RecordStoreError(table, kind string) {
	globalManager.storeErrors.WithLabelValues(table, kind).Inc()
}

// RecordSnapshotRun records one snapshot operation and its per-row outcomes.
func RecordSnapshotRun(appended, failed int) {
	globalManager.snapshotRuns.Inc()
	globalManager.snapshotRowsAppended.Add(float64(appended))
	globalManager.snapshotRowsFailed.Add(float64(failed))
}

// UpdateProjectsTracked sets the current tracked-project count.
func UpdateProjectsTracked(count int) {
	globalManager.projectsTracked.Set(float64(count))
}

// UpdateQuadrantCount sets the number of projects in a quadrant.
func UpdateQuadrantCount(quadrant string, count int) {
	globalManager.quadrantProjects.WithLabelValues(quadrant).Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, latencyMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(latencyMs)
}

// RecordErrorByEndpoint records an error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordValidationFailure records an update rejected by validation.
func RecordValidationFailure() {
	globalManager.validationFailures.Inc()
}

// UpdateSystemMemoryUsage sets the current heap allocation.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry for serving /healthz metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
