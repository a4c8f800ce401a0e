package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jobboard"

// Metrics holds the service collectors on a private registry, so tests
// can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	ListingCache  *prometheus.CounterVec
	ListingTime   prometheus.Histogram
	AlertsSent    *prometheus.CounterVec
	JobsImported  *prometheus.CounterVec
	WSConnections prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ListingCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_cache_total",
			Help:      "Listing cache lookups by result (hit, miss).",
		}, []string{"result"}),
		ListingTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_query_duration_seconds",
			Help:      "Time spent answering listing requests that missed the cache.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		AlertsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saved_search_alerts_total",
			Help:      "Saved search alert runs by outcome.",
		}, []string{"outcome"}),
		JobsImported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_imported_total",
			Help:      "Job import attempts by outcome.",
		}, []string{"outcome"}),
		WSConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections",
			Help:      "Open WebSocket connections.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.ListingCache,
		m.ListingTime,
		m.AlertsSent,
		m.JobsImported,
		m.WSConnections,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// The helpers below accept a nil receiver so callers without metrics
// need no guards.

func (m *Metrics) CacheHit() {
	if m != nil {
		m.ListingCache.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.ListingCache.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) ObserveListing(seconds float64) {
	if m != nil {
		m.ListingTime.Observe(seconds)
	}
}

func (m *Metrics) Alert(outcome string) {
	if m != nil {
		m.AlertsSent.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) Import(outcome string) {
	if m != nil {
		m.JobsImported.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) WSConnected() {
	if m != nil {
		m.WSConnections.Inc()
	}
}

func (m *Metrics) WSDisconnected() {
	if m != nil {
		m.WSConnections.Dec()
	}
}
