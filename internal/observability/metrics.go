package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the desk's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	requestCount     *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	errorCount       *prometheus.CounterVec
	adapterFallbacks *prometheus.CounterVec
	storeReloads     *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "desk_http_requests_total",
			Help: "HTTP requests handled, by path, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "desk_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "desk_http_errors_total",
			Help: "Failed HTTP requests, by path, method and error code.",
		}, []string{"path", "method", "code"}),
		adapterFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "desk_adapter_fallbacks_total",
			Help: "Upstream payload fields that required a default or sentinel.",
		}, []string{"entity", "field"}),
		storeReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "desk_store_reloads_total",
			Help: "View-state reloads, by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(m.requestCount, m.requestDuration, m.errorCount,
		m.adapterFallbacks, m.storeReloads)
	return m
}

// Registry returns the backing registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest increments counters for a handled request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// RecordFallback counts an adapter default/sentinel use.
func (m *Metrics) RecordFallback(entity, field string) {
	if m == nil {
		return
	}
	m.adapterFallbacks.WithLabelValues(entity, field).Inc()
}

// RecordReload counts a view-state reload outcome ("ok", "error", "stale").
func (m *Metrics) RecordReload(outcome string) {
	if m == nil {
		return
	}
	m.storeReloads.WithLabelValues(outcome).Inc()
}
