// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Auction metrics
	OrdersCreated      prometheus.Counter
	BatchesOpened      prometheus.Counter
	BatchesFilled      prometheus.Counter
	SolutionsSubmitted *prometheus.CounterVec
	SweepsEmpty        prometheus.Counter
	OpenOrdersPending  prometheus.Gauge
	BatchOrderCount    prometheus.Histogram
	WinningScore       prometheus.Histogram

	// HTTP metrics
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestErrors   *prometheus.CounterVec

	// Token metadata metrics
	MetadataCacheHits    prometheus.Counter
	MetadataCacheMisses  prometheus.Counter
	MetadataFetchErrors  prometheus.Counter
	MetadataFetchLatency prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "batch_auction"
	}

	return &Metrics{
		// Auction metrics
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auction",
			Name:      "orders_created_total",
			Help:      "Total number of orders created",
		}),
		BatchesOpened: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auction",
			Name:      "batches_opened_total",
			Help:      "Total number of batches opened by the sweep",
		}),
		BatchesFilled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auction",
			Name:      "batches_filled_total",
			Help:      "Total number of batches filled with a winning solution",
		}),
		SolutionsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auction",
			Name:      "solutions_submitted_total",
			Help:      "Total number of solutions submitted by agent",
		}, []string{"agent"}),
		SweepsEmpty: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auction",
			Name:      "sweeps_empty_total",
			Help:      "Total number of sweeps that found no pending orders",
		}),
		OpenOrdersPending: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "auction",
			Name:      "open_orders_pending",
			Help:      "Number of open orders awaiting the next sweep",
		}),
		BatchOrderCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "auction",
			Name:      "batch_order_count",
			Help:      "Number of orders swept into each batch",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		WinningScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "auction",
			Name:      "winning_score",
			Help:      "Score of the winning solution per filled batch",
			Buckets:   prometheus.DefBuckets,
		}),

		// HTTP metrics
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		HTTPRequestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_errors_total",
			Help:      "Total number of HTTP error responses by path",
		}, []string{"method", "path", "status"}),

		// Token metadata metrics
		MetadataCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "metadata",
			Name:      "cache_hits_total",
			Help:      "Total number of token metadata cache hits",
		}),
		MetadataCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "metadata",
			Name:      "cache_misses_total",
			Help:      "Total number of token metadata cache misses",
		}),
		MetadataFetchErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "metadata",
			Name:      "fetch_errors_total",
			Help:      "Total number of failed token metadata fetches",
		}),
		MetadataFetchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "metadata",
			Name:      "fetch_latency_seconds",
			Help:      "Token metadata fetch latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordOrderCreated increments the orders created counter.
func RecordOrderCreated() {
	DefaultMetrics.OrdersCreated.Inc()
}

// RecordBatchOpened records a batch opened over n orders.
func RecordBatchOpened(n int) {
	DefaultMetrics.BatchesOpened.Inc()
	DefaultMetrics.BatchOrderCount.Observe(float64(n))
}

// RecordBatchFilled records a filled batch and its winning score.
func RecordBatchFilled(score float64) {
	DefaultMetrics.BatchesFilled.Inc()
	DefaultMetrics.WinningScore.Observe(score)
}

// RecordSolutionSubmitted increments the solutions submitted counter.
func RecordSolutionSubmitted(agent string) {
	DefaultMetrics.SolutionsSubmitted.WithLabelValues(agent).Inc()
}

// RecordEmptySweep increments the empty sweeps counter.
func RecordEmptySweep() {
	DefaultMetrics.SweepsEmpty.Inc()
}

// UpdateOpenOrdersPending updates the pending orders gauge.
func UpdateOpenOrdersPending(n int) {
	DefaultMetrics.OpenOrdersPending.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request duration, counting errors.
func RecordHTTPRequest(method, path, status string, seconds float64) {
	DefaultMetrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
	if len(status) > 0 && status[0] != '2' {
		DefaultMetrics.HTTPRequestErrors.WithLabelValues(method, path, status).Inc()
	}
}

// RecordMetadataCacheHit increments the metadata cache hit counter.
func RecordMetadataCacheHit() {
	DefaultMetrics.MetadataCacheHits.Inc()
}

// RecordMetadataCacheMiss increments the metadata cache miss counter.
func RecordMetadataCacheMiss() {
	DefaultMetrics.MetadataCacheMisses.Inc()
}

// RecordMetadataFetch records a metadata fetch, counting failures.
func RecordMetadataFetch(seconds float64, err error) {
	DefaultMetrics.MetadataFetchLatency.Observe(seconds)
	if err != nil {
		DefaultMetrics.MetadataFetchErrors.Inc()
	}
}
