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

type GetHandler struct {
	Svc      Service
	Resource resource.Config
	Logger   *slog.Logger
}

// ServeHTTP ニュース詳細取得
// @Summary      ニュース詳細取得
// @Description  指定されたIDのニュースを取得します
// @Tags         news
// @Produce      json
// @Param        id path int true "ニュースID"
// @Success      200 {object} DTO "ニュース詳細"
// @Failure      400 {object} respond.ErrorResponse "Bad request - invalid news ID"
// @Failure      404 {object} respond.ErrorResponse "Not found - news not found"
// @Failure      500 {object} respond.ErrorResponse "サーバーエラー"
// @Failure      503 {object} respond.ErrorResponse "Database unavailable"
// @Router       /news/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.ForRequest(r.Context(), h.Logger)

	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		writeError(w, logger, newsUC.ErrInvalidNewsID)
		return
	}

	n, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(n, h.Resource))
}
