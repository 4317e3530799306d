package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder tracks upstream traffic. It owns its registry so several
// recorders can coexist in one process (tests, multiple binaries).
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	retries  *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	cache    *prometheus.CounterVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptotrack_upstream_requests_total",
				Help: "Upstream requests by provider, operation and outcome",
			},
			[]string{"provider", "operation", "outcome"},
		),
		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptotrack_upstream_retries_total",
				Help: "Retries issued after upstream throttling",
			},
			[]string{"provider", "operation"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cryptotrack_upstream_duration_seconds",
				Help:    "Duration of upstream calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "operation"},
		),
		cache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptotrack_cache_lookups_total",
				Help: "Market cache lookups by result",
			},
			[]string{"operation", "result"},
		),
	}
}

func (r *Recorder) RecordUpstream(provider, operation, outcome string, seconds float64) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(provider, operation, outcome).Inc()
	r.latency.WithLabelValues(provider, operation).Observe(seconds)
}

func (r *Recorder) RecordRetry(provider, operation string) {
	if r == nil {
		return
	}
	r.retries.WithLabelValues(provider, operation).Inc()
}

func (r *Recorder) RecordCache(operation string, hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cache.WithLabelValues(operation, result).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
