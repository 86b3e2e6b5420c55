package pagination

import (
	"log/slog"
	"time"
)

// pageAttr groups the page window under one "pagination" key.
func pageAttr(params Params) slog.Attr {
	return slog.Group("pagination",
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit))
}

// LogServed logs a page that was returned to the client. logger is expected
// to carry the request-scoped attributes already.
func LogServed(logger *slog.Logger, params Params, meta Metadata, returned int, took time.Duration) {
	logger.Info("page served",
		pageAttr(params),
		slog.Int64("total", meta.Total),
		slog.Int("total_pages", meta.TotalPages),
		slog.Int("returned", returned),
		slog.Bool("past_end", params.Page > meta.TotalPages),
		slog.Duration("took", took))
}

// LogFailed logs a page that could not be produced.
func LogFailed(logger *slog.Logger, params Params, err error) {
	logger.Error("page failed",
		pageAttr(params),
		slog.Any("error", err))
}
