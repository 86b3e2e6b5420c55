package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"news-api/internal/handler/http/pathutil"
	"news-api/internal/handler/http/responsewriter"
	"news-api/internal/observability/metrics"
)

// Metrics records traffic per route label, so /news/1 and /news/2 share
// one series.
func Metrics(routes *pathutil.Routes) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			began := time.Now()
			rec := responsewriter.Wrap(w)
			next.ServeHTTP(rec, r)

			metrics.RecordHTTPRequest(r.Method, routes.Label(r.URL.Path), rec.Status(),
				time.Since(began), int(max(r.ContentLength, 0)), int(rec.Size()))
		})
	}
}

// MetricsHandler serves the default registry on /metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
