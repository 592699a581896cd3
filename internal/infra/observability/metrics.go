package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the client core.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the mock server's /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	authFailures    prometheus.Counter
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
}

// Snapshot is an aggregate view of the request counters, suitable for
// the CLI's verbose summary after a command run.
type Snapshot struct {
	TotalRequests float64
	ErrorCount    float64
	ErrorRate     float64
	AuthFailures  float64
	CacheHitRate  float64
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// client metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crm_client_request_duration_seconds",
				Help:    "Duration of API requests by HTTP method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_client_requests_total",
				Help: "Total API requests by outcome.",
			},
			[]string{"outcome"},
		),
		authFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crm_client_auth_failures_total",
				Help: "Total 401 responses that tore down the session.",
			},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_client_cache_hits_total",
				Help: "Total consumer cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_client_cache_misses_total",
				Help: "Total consumer cache misses.",
			},
			[]string{"cache"},
		),
	}
}

// RecordRequest records one completed API request.
func (m *Metrics) RecordRequest(method, outcome string, d time.Duration) {
	m.requestDuration.WithLabelValues(method).Observe(d.Seconds())
	m.requestsTotal.WithLabelValues(outcome).Inc()
}

// IncrAuthFailure increments the 401 teardown counter.
func (m *Metrics) IncrAuthFailure() {
	m.authFailures.Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// GetSnapshot reads the current counter values.
// Note: Prometheus counters expose cumulative values.
func (m *Metrics) GetSnapshot() Snapshot {
	success := getCounterValue(m.requestsTotal, "success")
	errCount := getCounterValue(m.requestsTotal, "error")
	total := success + errCount

	hits := getCounterValue(m.cacheHits, "dashboard")
	misses := getCounterValue(m.cacheMisses, "dashboard")

	snap := Snapshot{
		TotalRequests: total,
		ErrorCount:    errCount,
		AuthFailures:  getSingleCounterValue(m.authFailures),
	}
	if total > 0 {
		snap.ErrorRate = errCount / total
	}
	if hits+misses > 0 {
		snap.CacheHitRate = hits / (hits + misses)
	}
	return snap
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

func getSingleCounterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
