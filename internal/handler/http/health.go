// Package http provides the HTTP middleware and operational endpoints of the
// News API: access logging, panic recovery, body limits, request timeouts,
// write rate limiting, Prometheus metrics and health checks.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"news-api/internal/handler/http/respond"
)

// Check status values.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// poolBusyPercent of in-use connections marks the pool degraded.
const poolBusyPercent = 80.0

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the outcome of one named check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerState reports the state of a circuit breaker.
type BreakerState interface {
	State() gobreaker.State
}

// HealthHandler serves GET /health. Only the database check can make the
// service unhealthy; the breaker and the limiter are reported for operators.
type HealthHandler struct {
	DB      *sql.DB
	Driver  string
	Version string
	Breaker BreakerState
	Limiter *WriteLimiter
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{"database": h.database(ctx)}
	if h.Breaker != nil {
		checks["circuit_breaker"] = breakerCheck(h.Breaker.State())
	}
	if h.Limiter != nil {
		checks["write_rate_limiter"] = CheckStatus{
			Status:  StatusHealthy,
			Details: map[string]any{"active_clients": h.Limiter.Len()},
		}
	}

	resp := HealthResponse{
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}
	code := http.StatusOK
	if checks["database"].Status == StatusUnhealthy {
		resp.Status, code = StatusUnhealthy, http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, resp)
}

func (h *HealthHandler) database(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: StatusUnhealthy, Message: respond.SanitizeError(err)}
	}

	check := poolCheck(h.DB.Stats())
	if h.Driver != "" {
		check.Details["driver"] = h.Driver
	}
	return check
}

// poolCheck grades a reachable pool by how much of it is in use.
func poolCheck(stats sql.DBStats) CheckStatus {
	check := CheckStatus{
		Status: StatusHealthy,
		Details: map[string]any{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	}

	if stats.MaxOpenConnections == 0 {
		check.Status = StatusDegraded
		check.Message = "connection pool max connections not configured"
		return check
	}

	busy := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	check.Details["utilization_percent"] = busy
	if busy >= poolBusyPercent {
		check.Status = StatusDegraded
		check.Message = "connection pool utilization above 80%"
	}
	return check
}

func breakerCheck(state gobreaker.State) CheckStatus {
	check := CheckStatus{
		Status:  StatusHealthy,
		Details: map[string]any{"state": state.String()},
	}
	if state != gobreaker.StateClosed {
		check.Status = StatusDegraded
		check.Message = "database circuit breaker is " + state.String()
	}
	return check
}

// ReadyHandler serves GET /ready: 200 once the database answers a ping.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		plainText(w, http.StatusServiceUnavailable, "database not configured")
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		plainText(w, http.StatusServiceUnavailable, "database not ready: "+respond.SanitizeError(err))
		return
	}
	plainText(w, http.StatusOK, "ready")
}

// LiveHandler serves GET /live: 200 while the process can respond.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	plainText(w, http.StatusOK, "alive")
}

func plainText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Error("health: failed to write response", slog.Any("error", err))
	}
}
