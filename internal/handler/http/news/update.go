package news

import (
	"log/slog"
	"net/http"

	"news-api/internal/handler/http/pathutil"
	"news-api/internal/handler/http/respond"
	"news-api/internal/observability/logging"
	"news-api/internal/resource"
	newsUC "news-api/internal/usecase/news"
)

type UpdateHandler struct {
	Svc      Service
	Resource resource.Config
	Logger   *slog.Logger
}

// ServeHTTP ニュース更新
// @Summary      ニュース更新
// @Description  指定されたIDのニュースを部分更新します。省略したフィールドは変更されません。resource 設定で put が有効な場合のみ公開されます。
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        id path int true "ニュースID"
// @Param        news body WriteRequest true "更新するフィールド"
// @Success      200 {object} DTO "更新されたニュース"
// @Failure      400 {object} respond.ValidationFailure "Bad request - validation failed, invalid ID or malformed JSON"
// @Failure      404 {object} respond.ErrorResponse "Not found - news not found"
// @Failure      405 {object} respond.ErrorResponse "Method not allowed - update is not enabled"
// @Failure      429 {object} respond.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} respond.ErrorResponse "サーバーエラー"
// @Failure      503 {object} respond.ErrorResponse "Database unavailable"
// @Router       /news/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.ForRequest(r.Context(), h.Logger)

	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		writeError(w, logger, newsUC.ErrInvalidNewsID)
		return
	}

	req, err := decodeWrite(r)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	req = bind(req, h.Resource)

	n, err := h.Svc.Update(r.Context(), newsUC.UpdateInput{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}

	logger.Info("news updated", slog.Int64("news_id", n.ID))
	respond.JSON(w, http.StatusOK, toDTO(n, h.Resource))
}
