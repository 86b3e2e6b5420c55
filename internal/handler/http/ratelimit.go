package http

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"news-api/internal/handler/http/respond"
	"news-api/internal/observability/metrics"
	"news-api/pkg/config"
)

// client is one token bucket plus the time it was last used.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// WriteLimiter applies a per-client token bucket to write requests (POST, PUT, PATCH).
// Read requests pass through untouched.
type WriteLimiter struct {
	rate       rate.Limit
	burst      int
	idleTTL    time.Duration
	trustProxy bool
	now        func() time.Time

	mu      sync.Mutex
	clients map[string]*client
}

// NewWriteLimiter creates a WriteLimiter from cfg.
// trustProxy makes ClientIP honor X-Forwarded-For and X-Real-IP.
func NewWriteLimiter(cfg config.WriteRateLimit, trustProxy bool) *WriteLimiter {
	return &WriteLimiter{
		rate:       rate.Limit(cfg.RPS),
		burst:      cfg.Burst,
		idleTTL:    cfg.IdleTTL,
		trustProxy: trustProxy,
		now:        time.Now,
		clients:    make(map[string]*client),
	}
}

// Limit returns 429 Too Many Requests once a client's bucket is empty.
func (wl *WriteLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isWrite(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		if !wl.allow(ClientIP(r, wl.trustProxy)) {
			metrics.RateLimitRejectedTotal.WithLabelValues(r.Method).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(wl.retryAfterSeconds()))
			respond.SafeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (wl *WriteLimiter) allow(ip string) bool {
	now := wl.now()

	wl.mu.Lock()
	c, ok := wl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(wl.rate, wl.burst)}
		wl.clients[ip] = c
	}
	c.lastSeen = now
	wl.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// retryAfterSeconds is the time needed to refill one token, rounded up.
func (wl *WriteLimiter) retryAfterSeconds() int {
	if wl.rate <= 0 {
		return 1
	}
	secs := int(1/float64(wl.rate) + 0.999)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Cleanup drops clients that have been idle for longer than the idle TTL
// and returns how many were removed.
func (wl *WriteLimiter) Cleanup() int {
	cutoff := wl.now().Add(-wl.idleTTL)

	wl.mu.Lock()
	defer wl.mu.Unlock()

	removed := 0
	for ip, c := range wl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(wl.clients, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (wl *WriteLimiter) Len() int {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	return len(wl.clients)
}

// isWrite reports whether method mutates state.
func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
