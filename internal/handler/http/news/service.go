package news

import (
	"context"

	"news-api/internal/common/pagination"
	"news-api/internal/domain/entity"
	"news-api/internal/repository"
	newsUC "news-api/internal/usecase/news"
)

// Service is the use case surface the handlers depend on.
// *newsUC.Service satisfies it.
type Service interface {
	Create(ctx context.Context, in newsUC.CreateInput) (*entity.News, error)
	Get(ctx context.Context, id int64) (*entity.News, error)
	List(ctx context.Context, criteria repository.NewsCriteria, params pagination.Params) (*newsUC.PaginatedResult, error)
	Update(ctx context.Context, in newsUC.UpdateInput) (*entity.News, error)
}

var _ Service = (*newsUC.Service)(nil)
