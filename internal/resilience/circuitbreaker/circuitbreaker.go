// Package circuitbreaker makes the news store fail fast while the database
// is down, using github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/sony/gobreaker"

	"news-api/internal/observability/metrics"
)

// Settings decide when the store breaker opens and when it lets traffic
// through again.
type Settings struct {
	Name string

	// TripAfter consecutive store failures open the breaker.
	TripAfter uint32
	// Cooldown is spent open before trial requests are admitted.
	Cooldown time.Duration
	// TrialRequests may run while half-open; one failure reopens.
	TrialRequests uint32
	// Window resets the closed-state counters.
	Window time.Duration
}

// StoreSettings are the production settings of the news store breaker.
func StoreSettings() Settings {
	return Settings{
		Name:          "database",
		TripAfter:     5,
		Cooldown:      30 * time.Second,
		TrialRequests: 3,
		Window:        time.Minute,
	}
}

func newBreaker(s Settings, logger *slog.Logger) *gobreaker.CircuitBreaker {
	trip := max(s.TripAfter, 1)
	metrics.SetCircuitBreakerOpen(s.Name, false)

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.TrialRequests,
		Interval:    s.Window,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= trip
		},
		IsSuccessful: storeAnswered,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("store circuit breaker changed state",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.SetCircuitBreakerOpen(name, to == gobreaker.StateOpen)
		},
	})
}

// storeAnswered reports whether err still proves the database is reachable.
// A canceled client and a statement the store rejected on its merits
// (constraint, bad input) must not count towards opening the breaker.
func storeAnswered(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint || liteErr.Code == sqlite3.ErrTooBig
	}
	return false
}

// IsUnavailable reports whether err came from an open or saturated breaker.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
