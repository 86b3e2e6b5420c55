package repository

import (
	"context"

	"news-api/internal/domain/entity"
)

// NewsCriteria contains optional filters for listing news.
// Nil fields are not applied; set fields are combined with AND.
type NewsCriteria struct {
	ID    *int64  // Optional: exact id match
	Title *string // Optional: title match, see TitleExact
	// TitleExact switches the title filter from case-insensitive substring to equality.
	TitleExact bool
}

type NewsRepository interface {
	// Create inserts the news and sets its ID.
	Create(ctx context.Context, news *entity.News) error
	// Get returns (nil, nil) if the news is not found.
	Get(ctx context.Context, id int64) (*entity.News, error)
	// Update persists title, content and updated_at. Returns entity.ErrNotFound if no row matched.
	Update(ctx context.Context, news *entity.News) error
	// Find returns news matching criteria ordered by id ASC.
	// Parameters:
	//   - offset: Number of rows to skip (calculated from page number)
	//   - limit: Maximum number of rows to return
	Find(ctx context.Context, criteria NewsCriteria, offset, limit int) ([]*entity.News, error)
	// Count returns the number of news matching criteria.
	// This is used for calculating pagination metadata (total pages, etc.).
	Count(ctx context.Context, criteria NewsCriteria) (int64, error)
}
