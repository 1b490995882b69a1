package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
)

const namespace = "ico"

// Metrics is the Prometheus registry scraped at the metrics endpoint. It
// observes HTTP traffic, the per-session reference caches and report exports.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	cacheReads    *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	discarded     *prometheus.CounterVec
	sessions      prometheus.Gauge
	exports       *prometheus.CounterVec
	exportRows    *prometheus.CounterVec
}

// NewMetrics creates a registry with Go runtime and process collectors plus
// the service metrics.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "http", Name: "requests_total",
		Help: "HTTP requests served, by method, route and status.",
	}, []string{"method", "route", "status"})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	m.cacheReads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "refdata", Name: "reads_total",
		Help: "Reference collection reads, by resource and whether the data was fresh.",
	}, []string{"resource", "state"})
	m.fetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "refdata", Name: "fetches_total",
		Help: "Reference collection fetches, by resource and outcome.",
	}, []string{"resource", "outcome"})
	m.fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "refdata", Name: "fetch_duration_seconds",
		Help:    "Reference collection fetch latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})
	m.discarded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "refdata", Name: "discarded_responses_total",
		Help: "Fetch responses dropped because a newer request superseded them.",
	}, []string{"resource"})
	m.sessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "refdata", Name: "session_caches",
		Help: "Per-session reference caches currently held.",
	})
	m.exports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "report", Name: "exports_total",
		Help: "Report exports, by format and outcome.",
	}, []string{"format", "outcome"})
	m.exportRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "report", Name: "export_rows_total",
		Help: "Rows written by report exports, by format.",
	}, []string{"format"})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.cacheReads, m.fetches, m.fetchDuration, m.discarded, m.sessions,
		m.exports, m.exportRows,
	)
	return m
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one served request. An empty route (unmatched path)
// is reported as "unmatched" to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Read records a reference collection read.
func (m *Metrics) Read(resource reference.Resource, fresh bool) {
	state := "stale"
	if fresh {
		state = "fresh"
	}
	m.cacheReads.WithLabelValues(string(resource), state).Inc()
}

// Fetched records a completed reference fetch.
func (m *Metrics) Fetched(resource reference.Resource, elapsed time.Duration, err error) {
	m.fetches.WithLabelValues(string(resource), outcome(err)).Inc()
	m.fetchDuration.WithLabelValues(string(resource)).Observe(elapsed.Seconds())
}

// Discarded records a superseded fetch response.
func (m *Metrics) Discarded(resource reference.Resource) {
	m.discarded.WithLabelValues(string(resource)).Inc()
}

// Sessions records the number of live session caches.
func (m *Metrics) Sessions(n int) {
	m.sessions.Set(float64(n))
}

// Exported records a finished report export.
func (m *Metrics) Exported(format string, rows int, err error) {
	m.exports.WithLabelValues(format, outcome(err)).Inc()
	if err == nil {
		m.exportRows.WithLabelValues(format).Add(float64(rows))
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
