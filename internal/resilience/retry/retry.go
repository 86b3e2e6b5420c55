// Package retry waits out transient database failures while the service boots.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrExhausted is wrapped into the error returned once every attempt failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	Attempts int
	Base     time.Duration // pause after the first failure
	Cap      time.Duration
	Factor   float64
	Jitter   float64 // extra random fraction of each pause, 0..1

	// Retryable decides whether a failure may clear up on its own.
	// Transient is used when nil.
	Retryable func(error) bool
	Logger    *slog.Logger

	random func() float64
}

// Startup is the policy for reaching the database while its container is
// still coming up: six attempts spread over about twelve seconds.
func Startup(logger *slog.Logger) Policy {
	return Policy{
		Attempts: 6,
		Base:     500 * time.Millisecond,
		Cap:      5 * time.Second,
		Factor:   2,
		Jitter:   0.1,
		Logger:   logger,
	}
}

// Delay is the pause after the given failed attempt (1-based), before jitter.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}
	d := float64(p.Base) * math.Pow(factor, float64(attempt-1))
	if p.Cap > 0 && d > float64(p.Cap) {
		d = float64(p.Cap)
	}
	return time.Duration(d)
}

func (p Policy) jittered(d time.Duration) time.Duration {
	j := min(p.Jitter, 1)
	if j <= 0 {
		return d
	}
	random := p.random
	if random == nil {
		random = rand.Float64
	}
	return d + time.Duration(random()*float64(d)*j)
}

func (p Policy) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Do runs fn until it succeeds, fails permanently, runs out of attempts or
// ctx is done. op names the operation in logs and errors.
func (p Policy) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = Transient
	}
	attempts := max(p.Attempts, 1)

	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				p.logger().Info("recovered after retry", slog.String("op", op), slog.Int("attempt", attempt))
			}
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w: %w", op, ctx.Err(), err)
		}
		if !retryable(err) {
			return err
		}
		if attempt == attempts {
			return fmt.Errorf("%s: %w after %d attempts: %w", op, ErrExhausted, attempts, err)
		}

		wait := p.jittered(p.Delay(attempt))
		p.logger().Warn("transient failure, waiting to retry",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Int("attempts", attempts),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: %w", op, ctx.Err())
		}
	}
}

// Transient reports whether err looks like a store that is not reachable yet
// rather than one that rejected the request.
func Transient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	// A ping that ran out its own budget; the store may still be starting.
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// A server that answered with an error code (bad password, missing
	// database) will answer the same way next time.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH)
}
