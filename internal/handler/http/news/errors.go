package news

import (
	"errors"
	"log/slog"
	"net/http"

	"news-api/internal/common/pagination"
	"news-api/internal/domain/entity"
	"news-api/internal/handler/http/respond"
	"news-api/internal/resilience/circuitbreaker"
	newsUC "news-api/internal/usecase/news"
)

// writeError maps use case errors onto HTTP responses.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verrs entity.ValidationErrors
	var verr *entity.ValidationError

	switch {
	case errors.As(err, &verrs):
		respond.Violations(w, violations(verrs))
	case errors.As(err, &verr):
		respond.Violations(w, violations(entity.ValidationErrors{verr}))
	case errors.Is(err, newsUC.ErrInvalidNewsID),
		errors.Is(err, pagination.ErrInvalidPage),
		errors.Is(err, ErrInvalidIDFilter),
		errors.Is(err, ErrMalformedBody):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, ErrBodyTooLarge):
		respond.SafeError(w, http.StatusRequestEntityTooLarge, err)
	case errors.Is(err, newsUC.ErrNewsNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case circuitbreaker.IsUnavailable(err):
		logger.Warn("database unavailable", slog.String("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusServiceUnavailable, err)
	default:
		logger.Error("request failed", slog.String("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

func violations(errs entity.ValidationErrors) []respond.Violation {
	out := make([]respond.Violation, 0, len(errs))
	for _, e := range errs {
		out = append(out, respond.Violation{Field: e.Field, Message: e.Message})
	}
	return out
}
