package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements every hook interface on Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	RendersTotal   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec

	CacheRequestsTotal *prometheus.CounterVec
	CacheWriteBytes    *prometheus.HistogramVec

	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec
}

// NewMetrics registers the pathviz collectors on reg. A nil reg gets a fresh
// registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{registry: reg}
	f := promauto.With(reg)

	m.RendersTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathviz_renders_total",
			Help: "Total number of scene renders",
		},
		[]string{"kind", "format", "status"},
	)
	m.RenderDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathviz_render_duration_seconds",
			Help:    "Scene render latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind", "format"},
	)

	m.CacheRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathviz_cache_requests_total",
			Help: "Cache lookups by result",
		},
		[]string{"key_type", "result"},
	)
	m.CacheWriteBytes = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathviz_cache_write_bytes",
			Help:    "Size of cache writes in bytes",
			Buckets: []float64{1000, 10000, 100000, 1000000, 10000000},
		},
		[]string{"key_type"},
	)

	m.HTTPRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathviz_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	m.HTTPRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathviz_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	m.HTTPRequestsInFlight = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathviz_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)
	m.HTTPResponseSizeBytes = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathviz_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "route"},
	)
	return m
}

// Install registers m as the render, cache and HTTP hooks.
func (m *Metrics) Install() {
	SetRenderHooks(m)
	SetCacheHooks(m)
	SetHTTPHooks(m)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OnRenderStart(context.Context, string, string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, kind, format string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.RendersTotal.WithLabelValues(kind, format, status).Inc()
	m.RenderDuration.WithLabelValues(kind, format).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheRequestsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheRequestsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheWriteBytes.WithLabelValues(keyType).Observe(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.HTTPRequestsInFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, statusCode, size int, d time.Duration) {
	status := strconv.Itoa(statusCode)
	m.HTTPRequestsInFlight.Dec()
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
	m.HTTPResponseSizeBytes.WithLabelValues(method, route).Observe(float64(size))
}

var (
	_ RenderHooks = (*Metrics)(nil)
	_ CacheHooks  = (*Metrics)(nil)
	_ HTTPHooks   = (*Metrics)(nil)
)
