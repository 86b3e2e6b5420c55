package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"news-api/internal/observability/logging"
	"news-api/pkg/config"
)

// CORSConfig holds the cross-origin policy.
// An empty AllowedOrigins list disables CORS handling.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins, normalized to lower case
	// without a trailing slash.
	AllowedOrigins []string

	// AllowedMethods defaults to the methods the News API serves.
	AllowedMethods []string

	// AllowedHeaders defaults to Content-Type plus the correlation headers.
	AllowedHeaders []string

	// MaxAge is how long preflight results may be cached, in seconds. Default: 86400
	MaxAge int
}

// Enabled reports whether any origin is allowed.
func (c CORSConfig) Enabled() bool {
	return len(c.AllowedOrigins) > 0
}

// IsAllowed reports whether origin is in the whitelist. Comparison ignores case
// and a trailing slash.
func (c CORSConfig) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	for _, allowed := range c.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// LoadCORSConfig loads the CORS policy from environment variables.
//
// Environment variables:
//   - CORS_ALLOWED_ORIGINS: Comma-separated origins (empty disables CORS)
//   - CORS_ALLOWED_METHODS: Comma-separated methods (default: GET, POST, PUT, OPTIONS)
//   - CORS_ALLOWED_HEADERS: Comma-separated headers (default: Content-Type, X-Request-ID, traceparent)
//   - CORS_MAX_AGE: Preflight cache duration in seconds (default: 86400)
func LoadCORSConfig() (CORSConfig, error) {
	cfg := CORSConfig{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID", "traceparent"},
		MaxAge:         86400,
	}

	for _, origin := range splitList(os.Getenv("CORS_ALLOWED_ORIGINS")) {
		if err := validateOrigin(origin); err != nil {
			return CORSConfig{}, err
		}
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, normalizeOrigin(origin))
	}

	if methods := splitList(os.Getenv("CORS_ALLOWED_METHODS")); len(methods) > 0 {
		cfg.AllowedMethods = cfg.AllowedMethods[:0]
		for _, m := range methods {
			m = strings.ToUpper(m)
			switch m {
			case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodOptions:
				cfg.AllowedMethods = append(cfg.AllowedMethods, m)
			default:
				return CORSConfig{}, fmt.Errorf("invalid HTTP method %q in CORS_ALLOWED_METHODS", m)
			}
		}
	}

	if headers := splitList(os.Getenv("CORS_ALLOWED_HEADERS")); len(headers) > 0 {
		cfg.AllowedHeaders = headers
	}

	cfg.MaxAge = config.GetEnvInt("CORS_MAX_AGE", cfg.MaxAge)
	if cfg.MaxAge < 0 {
		return CORSConfig{}, fmt.Errorf("CORS_MAX_AGE must be non-negative, got: %d", cfg.MaxAge)
	}

	return cfg, nil
}

// CORS returns middleware that applies cfg to cross-origin requests.
//
// Requests without an Origin header, or from an origin that is not allowed,
// pass through without CORS headers and the browser blocks the response.
// Preflight requests from an allowed origin are answered with 204 and never
// reach next.
func CORS(cfg CORSConfig) Middleware {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")

			if !cfg.IsAllowed(origin) {
				logging.FromContext(r.Context()).Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Expose-Headers", "Location, Retry-After, X-Request-ID")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

// validateOrigin accepts scheme://host[:port] with an http or https scheme.
func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin URL %q: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", origin)
	}
	if u.Host == "" {
		return fmt.Errorf("origin must include a host: %s", origin)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin must not include path, query or fragment: %s", origin)
	}
	return nil
}
