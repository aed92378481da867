package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus metrics for Agora
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Upstream Metrics
	UpstreamRequestsTotal *prometheus.CounterVec
	TokenRefreshesTotal   prometheus.Counter
	StaleSnapshotsTotal   prometheus.Counter
}

// NewRegistry initializes and returns a new Registry with all metrics
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agora_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agora_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agora_cache_hits_total",
				Help: "Cache hits by entity type",
			},
			[]string{"entity"},
		),
		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agora_cache_misses_total",
				Help: "Cache misses by entity type",
			},
			[]string{"entity"},
		),
		UpstreamRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agora_upstream_requests_total",
				Help: "Requests issued to the Intra API by endpoint and status code",
			},
			[]string{"endpoint", "status_code"},
		),
		TokenRefreshesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agora_token_refreshes_total",
				Help: "Number of OAuth client-credential exchanges performed",
			},
		),
		StaleSnapshotsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agora_presence_stale_snapshots_total",
				Help: "Times a stale presence snapshot was served as a fallback",
			},
		),
	}
}

// RecordCacheHit increments the hit counter for an entity type. Safe on a nil registry.
func (r *Registry) RecordCacheHit(entity string) {
	if r == nil {
		return
	}
	r.CacheHitsTotal.WithLabelValues(entity).Inc()
}

// RecordCacheMiss increments the miss counter for an entity type. Safe on a nil registry.
func (r *Registry) RecordCacheMiss(entity string) {
	if r == nil {
		return
	}
	r.CacheMissesTotal.WithLabelValues(entity).Inc()
}
