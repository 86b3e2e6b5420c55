// Package respond writes the JSON bodies of the News API, including error
// bodies scrubbed of store and credential detail.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// ErrorResponse is the body of every non-validation error response.
type ErrorResponse struct {
	Error string `json:"error" example:"news not found"`
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorResponse{Error: err.Error()})
}

// Violation is a single rejected field in a validation failure response.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationFailure is the body of a 400 response caused by field constraints.
type ValidationFailure struct {
	Error      string      `json:"error"`
	Violations []Violation `json:"violations"`
}

// Violations writes a 400 response listing every rejected field.
func Violations(w http.ResponseWriter, violations []Violation) {
	if violations == nil {
		violations = []Violation{}
	}
	JSON(w, http.StatusBadRequest, ValidationFailure{
		Error:      "validation failed",
		Violations: violations,
	})
}

// exposable lists phrases of messages written for clients. Anything else
// may carry driver or DSN detail and is replaced by a generic message.
var exposable = []string{
	"required",
	"invalid",
	"not found",
	"not allowed",
	"must be",
	"cannot be",
	"too long",
	"too short",
	"too large",
	"rate limit",
	"malformed",
}

// clientMessage is the text SafeError sends for err under code, and whether
// it is err's own message. 5xx errors are never exposed.
func clientMessage(code int, err error) (string, bool) {
	switch {
	case code == http.StatusServiceUnavailable:
		return "service temporarily unavailable", false
	case code >= http.StatusInternalServerError:
		return "internal server error", false
	}
	msg := err.Error()
	lower := strings.ToLower(msg)
	for _, phrase := range exposable {
		if strings.Contains(lower, phrase) {
			return msg, true
		}
	}
	return "internal server error", false
}

// SafeError writes err under code, hiding messages that were not written
// for clients. Hidden errors are logged with credentials masked.
// A nil err writes nothing.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	msg, exposed := clientMessage(code, err)
	if !exposed {
		slog.Default().Error("internal server error",
			slog.Int("code", code),
			slog.String("status", http.StatusText(code)),
			slog.String("error", SanitizeError(err)))
	}
	JSON(w, code, ErrorResponse{Error: msg})
}
