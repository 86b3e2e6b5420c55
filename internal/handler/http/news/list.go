package news

import (
	"log/slog"
	"net/http"
	"time"

	"news-api/internal/common/pagination"
	"news-api/internal/handler/http/respond"
	"news-api/internal/observability/logging"
	"news-api/internal/resource"
)

type ListHandler struct {
	Svc           Service
	Resource      resource.Config
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP ニュース一覧取得
// @Summary      ニュース一覧取得（ページネーション対応）
// @Description  ニュースを id の昇順で取得します。1ページあたりの件数はサーバー設定で固定です。id は完全一致、title は大文字小文字を区別しない部分一致で絞り込めます。
// @Tags         news
// @Produce      json
// @Param        page   query    int     false  "ページ番号 (1-based)" default(1) minimum(1)
// @Param        id     query    int     false  "ID 完全一致"
// @Param        title  query    string  false  "タイトル部分一致（大文字小文字を区別しない）"
// @Success      200 {object} pagination.Response[DTO] "ページネーション付きニュース一覧"
// @Failure      400 {object} respond.ErrorResponse "Invalid query parameters"
// @Failure      500 {object} respond.ErrorResponse "サーバーエラー"
// @Failure      503 {object} respond.ErrorResponse "Database unavailable"
// @Router       /news [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	logger := logging.ForRequest(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters", slog.String("error", err.Error()))
		pagination.CountPage(pagination.OutcomeRejected, params.Page)
		writeError(w, logger, err)
		return
	}

	criteria, err := parseCriteria(r.URL.Query(), h.Resource)
	if err != nil {
		logger.Warn("invalid filter parameters", slog.String("error", err.Error()))
		pagination.CountPage(pagination.OutcomeRejected, params.Page)
		writeError(w, logger, err)
		return
	}

	result, err := h.Svc.List(ctx, criteria, params)
	if err != nil {
		pagination.LogFailed(logger, params, err)
		pagination.CountPage(pagination.OutcomeFailed, params.Page)
		writeError(w, logger, err)
		return
	}

	response := pagination.NewResponse(toDTOs(result.Data, h.Resource), result.Pagination)

	duration := time.Since(startTime)
	pagination.CountPage(pagination.OutcomeServed, params.Page)
	pagination.ObserveStage("handler", duration)
	pagination.LogServed(logger, params, result.Pagination, len(response.Data), duration)

	respond.JSON(w, http.StatusOK, response)
}
