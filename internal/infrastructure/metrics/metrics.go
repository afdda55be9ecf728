package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "delitrack"

// Metrics holds the process collectors. Each instance owns its registry so
// tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	TelemetrySessionsActive prometheus.Gauge
	TelemetryTicksTotal     *prometheus.CounterVec

	OrderLookupsTotal *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	m.TelemetrySessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "telemetry_sessions_active",
			Help:      "Number of running telemetry sessions",
		},
	)

	m.TelemetryTicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telemetry_ticks_total",
			Help:      "Total number of simulated telemetry ticks",
		},
		[]string{"kind"},
	)

	m.OrderLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_lookups_total",
			Help:      "Order lookups by result",
		},
		[]string{"result"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.TelemetrySessionsActive,
		m.TelemetryTicksTotal,
		m.OrderLookupsTotal,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) SessionStarted() {
	m.TelemetrySessionsActive.Inc()
}

func (m *Metrics) SessionStopped() {
	m.TelemetrySessionsActive.Dec()
}

func (m *Metrics) RecordTick(kind string) {
	m.TelemetryTicksTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordOrderLookup(fallback bool) {
	result := "hit"
	if fallback {
		result = "fallback"
	}
	m.OrderLookupsTotal.WithLabelValues(result).Inc()
}
