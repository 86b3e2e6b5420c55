package http

import (
	"errors"
	"mime"
	"net/http"

	"news-api/internal/handler/http/respond"
)

// Input limits enforced by InputValidation.
const (
	MaxPathLength  = 2048
	MaxQueryLength = 4096
)

// InputValidation returns middleware that rejects malformed requests before routing.
// It enforces limits on:
//   - URI path length (414)
//   - raw query length (414)
//   - Content-Type of requests that carry a body (415 unless application/json)
func InputValidation() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > MaxPathLength || len(r.URL.RawQuery) > MaxQueryLength {
				respond.SafeError(w, http.StatusRequestURITooLong, errors.New("URI too long"))
				return
			}

			if isWrite(r.Method) && r.ContentLength != 0 && !isJSON(r.Header.Get("Content-Type")) {
				respond.SafeError(w, http.StatusUnsupportedMediaType, errors.New("content type not allowed: use application/json"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isJSON accepts application/json with optional parameters, and an absent header.
func isJSON(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || mediaType == "application/ld+json"
}
