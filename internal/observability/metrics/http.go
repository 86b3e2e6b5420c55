package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// routeLabels identify a request by method, normalised route and status.
var routeLabels = []string{"method", "path", "status"}

// sizeBuckets run from 100 B to 1 GB; a news page rarely leaves the first
// three.
var sizeBuckets = prometheus.ExponentialBuckets(100, 10, 8)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by method, route and status code.",
	}, routeLabels)

	// HTTPRequestDuration spans 5ms list hits up to a 10s stalled store.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Time from first byte read to handler return.",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, routeLabels)

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Requests currently inside a handler.",
	})

	HTTPRequestSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_size_bytes",
		Help:    "Declared request body size of requests that carried one.",
		Buckets: sizeBuckets,
	}, routeLabels[:2])

	HTTPResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_response_size_bytes",
		Help:    "Response body bytes written.",
		Buckets: sizeBuckets,
	}, routeLabels[:2])

	RateLimitRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_rate_limit_rejected_total",
		Help: "Write requests answered 429 by the per-client limiter.",
	}, []string{"method"})
)

// RecordHTTPRequest records one finished request. path must already be a
// bounded route label.
func RecordHTTPRequest(method, path string, status int, took time.Duration, requestBytes, responseBytes int) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(took.Seconds())

	if requestBytes > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestBytes))
	}
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseBytes))
}
