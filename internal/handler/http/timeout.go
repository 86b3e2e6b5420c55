package http

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"news-api/internal/handler/http/respond"
	"news-api/internal/observability/logging"
)

// ErrRequestTimeout is the body of a 504 written by Timeout.
var ErrRequestTimeout = errors.New("request timeout")

// Timeout returns middleware that enforces request timeouts.
// If a request takes longer than the specified duration, it returns 504 Gateway Timeout.
// The context is canceled to allow downstream handlers to clean up.
//
// The handler writes into a buffer; the buffered response is copied to the
// client only when the handler finishes in time. Exactly one of the two
// outcomes reaches the client. A panic in the handler is re-raised on the
// calling goroutine so that Recover still sees it.
func Timeout(duration time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			done := make(chan struct{})
			panicCh := make(chan any, 1)
			tw := &timeoutWriter{h: make(http.Header)}

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicCh <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			finished := false
			select {
			case p := <-panicCh:
				panic(p)
			case <-done:
				finished = true
			case <-ctx.Done():
			}

			tw.mu.Lock()
			defer tw.mu.Unlock()

			// A handler that returned because its deadline passed has only
			// partial output; it is discarded like an unfinished one.
			if finished && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				dst := w.Header()
				for k, vv := range tw.h {
					dst[k] = vv
				}
				if tw.code == 0 {
					tw.code = http.StatusOK
				}
				w.WriteHeader(tw.code)
				_, _ = w.Write(tw.buf.Bytes())
				return
			}

			tw.timedOut = true
			logging.FromContext(r.Context()).Warn("request timed out",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Duration("timeout", duration))
			respond.Error(w, http.StatusGatewayTimeout, ErrRequestTimeout)
		})
	}
}

// timeoutWriter buffers the handler's response until the outcome is known.
type timeoutWriter struct {
	mu       sync.Mutex
	h        http.Header
	buf      bytes.Buffer
	code     int
	timedOut bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.h
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut || tw.code != 0 {
		return
	}
	tw.code = code
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if tw.code == 0 {
		tw.code = http.StatusOK
	}
	return tw.buf.Write(b)
}
