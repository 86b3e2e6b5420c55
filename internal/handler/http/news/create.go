package news

import (
	"log/slog"
	"net/http"
	"strconv"

	"news-api/internal/handler/http/respond"
	"news-api/internal/observability/logging"
	"news-api/internal/resource"
	newsUC "news-api/internal/usecase/news"
)

type CreateHandler struct {
	Svc      Service
	Resource resource.Config
	Logger   *slog.Logger
}

// ServeHTTP ニュース作成
// @Summary      ニュース作成
// @Description  新しいニュースを作成します。title は 5〜225 文字、content は 10 文字以上が必要です。
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        news body WriteRequest true "ニュース情報"
// @Success      201 {object} DTO "作成されたニュース"
// @Header       201 {string} Location "作成されたニュースの URL"
// @Failure      400 {object} respond.ValidationFailure "Bad request - validation failed or malformed JSON"
// @Failure      413 {object} respond.ErrorResponse "Request body too large"
// @Failure      415 {object} respond.ErrorResponse "Unsupported media type"
// @Failure      429 {object} respond.ErrorResponse "Too many requests - rate limit exceeded"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      500 {object} respond.ErrorResponse "サーバーエラー"
// @Failure      503 {object} respond.ErrorResponse "Database unavailable"
// @Router       /news [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.ForRequest(r.Context(), h.Logger)

	req, err := decodeWrite(r)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	req = bind(req, h.Resource)

	n, err := h.Svc.Create(r.Context(), newsUC.CreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}

	logger.Info("news created", slog.Int64("news_id", n.ID))

	w.Header().Set("Location", h.Resource.CollectionPath()+"/"+strconv.FormatInt(n.ID, 10))
	respond.JSON(w, http.StatusCreated, toDTO(n, h.Resource))
}
