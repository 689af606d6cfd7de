package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's Prometheus metrics.
type Collector struct {
	registry            *prometheus.Registry
	enrichmentsTotal    prometheus.Counter
	enrichmentDuration  prometheus.Histogram
	connectionsReturned prometheus.Histogram
	zeroFillsTotal      *prometheus.CounterVec
	payoutsTotal        *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
}

// NewCollector registers the service metrics on a fresh registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		enrichmentsTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ib_enrichments_total",
			Help: "Total number of connection enrichment batches",
		}),
		enrichmentDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ib_enrichment_duration_seconds",
			Help:    "Time taken to enrich one referral code",
			Buckets: prometheus.DefBuckets,
		}),
		connectionsReturned: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ib_connections_returned",
			Help:    "Connections returned per enrichment batch",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		zeroFillsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ib_zero_fills_total",
			Help: "Contributions replaced with zeroes after fetch failures",
		}, []string{"scope"}),
		payoutsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ib_payouts_total",
			Help: "Commission payout attempts by outcome",
		}, []string{"outcome"}),
		httpRequestsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by route and status class",
		}, []string{"route", "status"}),
	}
}

// RecordEnrichment records one completed enrichment batch.
func (c *Collector) RecordEnrichment(duration time.Duration, connections int) {
	c.enrichmentsTotal.Inc()
	c.enrichmentDuration.Observe(duration.Seconds())
	c.connectionsReturned.Observe(float64(connections))
}

// RecordZeroFill counts a zero-filled contribution for the given scope
// ("account", "user", "payable_commission").
func (c *Collector) RecordZeroFill(scope string) {
	c.zeroFillsTotal.WithLabelValues(scope).Inc()
}

// RecordPayout counts a payout attempt by outcome ("accepted", "rejected",
// "error").
func (c *Collector) RecordPayout(outcome string) {
	c.payoutsTotal.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest counts a served request.
func (c *Collector) RecordHTTPRequest(route, status string) {
	c.httpRequestsTotal.WithLabelValues(route, status).Inc()
}

// Handler exposes the registry for scraping.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
