package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-api/internal/handler/http/pathutil"
	"news-api/internal/observability/metrics"
)

func metricsMiddleware(h http.HandlerFunc) http.Handler {
	return Metrics(pathutil.NewRoutes("/news"))(h)
}

func TestMetrics_PathNormalization(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := metricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))

	for _, id := range []string{"1", "2", "123", "abc", "9999999"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/news/"+id, nil))
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/news?page=3", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	for _, p := range []string{"/.env", "/admin/login", "/news/1/edit"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, float64(5), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/news/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/news", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", pathutil.UnmatchedRoute, "200")))
	assert.Equal(t, 4, testutil.CollectAndCount(metrics.HTTPRequestsTotal))
}

func TestMetrics_RenamedResource(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := Metrics(pathutil.NewRoutes("/feeds"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 1; i <= 20; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/feeds/"+strconv.Itoa(i), nil))
	}

	assert.Equal(t, float64(20), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/feeds/:id", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestsTotal))
}

func TestMetrics_StatusCodes(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	tests := []struct {
		name   string
		method string
		status int
	}{
		{"created", http.MethodPost, http.StatusCreated},
		{"bad request", http.MethodPost, http.StatusBadRequest},
		{"not found", http.MethodGet, http.StatusNotFound},
		{"method not allowed", http.MethodPut, http.StatusMethodNotAllowed},
		{"internal error", http.MethodGet, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := metricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, "/news/1", nil))

			got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(tt.method, "/news/:id", strconv.Itoa(tt.status)))
			assert.Equal(t, float64(1), got)
		})
	}
}

func TestMetrics_ImplicitOK(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := metricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "no explicit header")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/news", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/news", "200")))
}

func TestMetrics_InFlight(t *testing.T) {
	metrics.HTTPRequestsInFlight.Set(0)

	var during float64
	handler := metricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(metrics.HTTPRequestsInFlight)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/news", nil))

	assert.Equal(t, float64(1), during)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.HTTPRequestsInFlight))
}

func TestMetrics_Sizes(t *testing.T) {
	metrics.HTTPRequestSize.Reset()
	metrics.HTTPResponseSize.Reset()

	body := `{"title":"Launch Update","content":"Service goes live today."}`
	handler := metricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(strings.Repeat("x", 500)))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/news", strings.NewReader(body)))

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestSize))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPResponseSize))
}

func TestMetricsHandler(t *testing.T) {
	metricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/news", nil))

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), "http_request_duration_seconds")
}

func BenchmarkMetrics(b *testing.B) {
	handler := metricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/news/42", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}
