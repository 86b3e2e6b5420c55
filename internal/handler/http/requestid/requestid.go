// Package requestid tags every request with an ID that appears in the
// X-Request-ID response header and in each log line of the request.
package requestid

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the ID in both directions.
	RequestIDHeader = "X-Request-ID"
	// MaxLength bounds a client-supplied ID.
	MaxLength = 128
)

type ctxKey struct{}

// FromContext returns the ID stored by WithRequestID, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Valid reports whether a client-supplied id may be reused: 1 to MaxLength
// bytes of ASCII letters, digits, '-', '_' or '.'. Anything else could smuggle
// newlines or markup into the logs.
func Valid(id string) bool {
	return id != "" && len(id) <= MaxLength && strings.IndexFunc(id, outsideIDAlphabet) < 0
}

func outsideIDAlphabet(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return false
	case r == '-', r == '_', r == '.':
		return false
	}
	return true
}

// Middleware reuses a valid incoming X-Request-ID or mints a UUIDv4, echoes
// it on the response and stores it in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !Valid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
