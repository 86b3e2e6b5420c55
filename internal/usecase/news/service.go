package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"news-api/internal/common/pagination"
	"news-api/internal/domain/entity"
	"news-api/internal/observability/metrics"
	"news-api/internal/observability/tracing"
	"news-api/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CreateInput represents the input parameters for creating a news item.
// A nil field is reported as missing.
type CreateInput struct {
	Title   *string
	Content *string
}

// UpdateInput represents the input parameters for updating an existing news item.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID      int64
	Title   *string
	Content *string
}

// PaginatedResult represents the result of a paginated query.
// It contains both the data and pagination metadata.
type PaginatedResult struct {
	Data       []*entity.News
	Pagination pagination.Metadata
}

// Service provides news management use cases.
// Validator and Now default to the standard constraints and the wall clock.
type Service struct {
	Repo      repository.NewsRepository
	Validator *entity.Validator
	Now       func() time.Time
}

// NewService creates a Service with the default constraints and clock.
func NewService(repo repository.NewsRepository) *Service {
	return &Service{
		Repo:      repo,
		Validator: defaultValidator,
		Now:       time.Now,
	}
}

var defaultValidator = entity.NewValidator(entity.DefaultConstraints())

func (s *Service) validator() *entity.Validator {
	if s.Validator == nil {
		return defaultValidator
	}
	return s.Validator
}

// now returns the current time in UTC at the store's microsecond precision.
func (s *Service) now() time.Time {
	clock := s.Now
	if clock == nil {
		clock = time.Now
	}
	return clock().UTC().Truncate(time.Microsecond)
}

// Create validates the input and stores a new news item.
// Both timestamps are set to the same instant. On validation failure
// entity.ValidationErrors is returned and nothing is persisted.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.News, error) {
	ctx, span := tracing.StartSpan(ctx, "news.Create")
	defer span.End()

	if err := s.validator().ValidateFields(in.Title, in.Content); err != nil {
		recordValidation(span, err)
		metrics.RecordNewsOperation("create", metrics.ResultInvalid)
		return nil, err
	}

	n := entity.NewNews(*in.Title, *in.Content, s.now())

	start := time.Now()
	err := s.Repo.Create(ctx, n)
	metrics.RecordDBQuery("insert_news", time.Since(start))
	if err != nil {
		fail(span, err)
		metrics.RecordNewsOperation("create", metrics.ResultError)
		return nil, fmt.Errorf("create news: %w", err)
	}

	span.SetAttributes(attribute.Int64("news.id", n.ID))
	metrics.RecordNewsOperation("create", metrics.ResultSuccess)
	metrics.RecordNewsCreated()
	return n, nil
}

// Get retrieves a single news item by its ID.
// Returns ErrInvalidNewsID if the ID is not positive.
// Returns ErrNewsNotFound if the news does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.News, error) {
	ctx, span := tracing.StartSpan(ctx, "news.Get", attribute.Int64("news.id", id))
	defer span.End()

	if id <= 0 {
		metrics.RecordNewsOperation("get", metrics.ResultInvalid)
		return nil, ErrInvalidNewsID
	}

	start := time.Now()
	n, err := s.Repo.Get(ctx, id)
	metrics.RecordDBQuery("get_news", time.Since(start))
	if err != nil {
		fail(span, err)
		metrics.RecordNewsOperation("get", metrics.ResultError)
		return nil, fmt.Errorf("get news: %w", err)
	}
	if n == nil {
		metrics.RecordNewsOperation("get", metrics.ResultNotFound)
		return nil, ErrNewsNotFound
	}

	metrics.RecordNewsOperation("get", metrics.ResultSuccess)
	return n, nil
}

// List returns one page of news matching criteria, ordered by id.
// A page past the end yields empty data with the real total.
func (s *Service) List(ctx context.Context, criteria repository.NewsCriteria, params pagination.Params) (*PaginatedResult, error) {
	ctx, span := tracing.StartSpan(ctx, "news.List",
		attribute.Int("pagination.page", params.Page),
		attribute.Int("pagination.limit", params.Limit),
		attribute.Bool("filter.id", criteria.ID != nil),
		attribute.Bool("filter.title", criteria.Title != nil),
	)
	defer span.End()

	if err := params.Validate(); err != nil {
		metrics.RecordNewsOperation("list", metrics.ResultInvalid)
		return nil, err
	}

	started := time.Now()
	defer func() {
		pagination.ObserveStage("service", time.Since(started))
	}()

	start := time.Now()
	total, err := s.Repo.Count(ctx, criteria)
	metrics.RecordDBQuery("count_news", time.Since(start))
	if err != nil {
		fail(span, err)
		metrics.RecordNewsOperation("list", metrics.ResultError)
		return nil, fmt.Errorf("count news: %w", err)
	}
	pagination.ObserveTotal(params, total)

	data := []*entity.News{}
	if !params.PastEnd(total) {
		start = time.Now()
		data, err = s.Repo.Find(ctx, criteria, params.Offset(), params.Limit)
		metrics.RecordDBQuery("find_news", time.Since(start))
		if err != nil {
			fail(span, err)
			metrics.RecordNewsOperation("list", metrics.ResultError)
			return nil, fmt.Errorf("find news: %w", err)
		}
	}

	span.SetAttributes(attribute.Int64("result.total", total), attribute.Int("result.count", len(data)))
	metrics.RecordNewsOperation("list", metrics.ResultSuccess)
	return &PaginatedResult{
		Data:       data,
		Pagination: params.Metadata(total),
	}, nil
}

// Update applies the non-nil fields of in to an existing news item.
// The resulting entity is validated as a whole and UpdatedAt is refreshed;
// CreatedAt never changes.
// Returns ErrInvalidNewsID if the ID is not positive.
// Returns ErrNewsNotFound if the news does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.News, error) {
	ctx, span := tracing.StartSpan(ctx, "news.Update", attribute.Int64("news.id", in.ID))
	defer span.End()

	if in.ID <= 0 {
		metrics.RecordNewsOperation("update", metrics.ResultInvalid)
		return nil, ErrInvalidNewsID
	}

	n, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		fail(span, err)
		metrics.RecordNewsOperation("update", metrics.ResultError)
		return nil, fmt.Errorf("get news: %w", err)
	}
	if n == nil {
		metrics.RecordNewsOperation("update", metrics.ResultNotFound)
		return nil, ErrNewsNotFound
	}

	if in.Title != nil {
		n.Title = *in.Title
	}
	if in.Content != nil {
		n.Content = *in.Content
	}

	if err := s.validator().Validate(n); err != nil {
		recordValidation(span, err)
		metrics.RecordNewsOperation("update", metrics.ResultInvalid)
		return nil, err
	}

	n.Touch(s.now())

	start := time.Now()
	err = s.Repo.Update(ctx, n)
	metrics.RecordDBQuery("update_news", time.Since(start))
	if errors.Is(err, entity.ErrNotFound) {
		metrics.RecordNewsOperation("update", metrics.ResultNotFound)
		return nil, ErrNewsNotFound
	}
	if err != nil {
		fail(span, err)
		metrics.RecordNewsOperation("update", metrics.ResultError)
		return nil, fmt.Errorf("update news: %w", err)
	}

	metrics.RecordNewsOperation("update", metrics.ResultSuccess)
	return n, nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "repository error")
}

func recordValidation(span trace.Span, err error) {
	span.SetAttributes(attribute.Bool("validation.failed", true))
	var errs entity.ValidationErrors
	if !errors.As(err, &errs) {
		return
	}
	fields := errs.Fields()
	for _, f := range fields {
		metrics.RecordValidationFailure(f)
	}
	span.SetAttributes(attribute.StringSlice("validation.fields", fields))
}
