// Package sqlite provides SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"news-api/internal/domain/entity"
	"news-api/internal/infra/db"
	"news-api/internal/pkg/search"
	"news-api/internal/repository"
)

// NewsRepo implements the NewsRepository interface using SQLite.
type NewsRepo struct {
	db           db.DBTX
	queryBuilder *NewsQueryBuilder
}

// NewNewsRepo creates a new SQLite-backed news repository.
func NewNewsRepo(conn db.DBTX) repository.NewsRepository {
	return &NewsRepo{
		db:           conn,
		queryBuilder: NewNewsQueryBuilder(),
	}
}

// Create inserts news and stores the generated id on it.
func (repo *NewsRepo) Create(ctx context.Context, news *entity.News) error {
	const query = `
INSERT INTO news
(title, content, created_at, updated_at)
VALUES (?, ?, ?, ?)
`
	res, err := repo.db.ExecContext(ctx, query,
		news.Title, news.Content, news.CreatedAt, news.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	news.ID = id
	return nil
}

// Get retrieves a news by id. Returns (nil, nil) when it does not exist.
func (repo *NewsRepo) Get(ctx context.Context, id int64) (*entity.News, error) {
	const query = `
SELECT id, title, content, created_at, updated_at
FROM news
WHERE id = ?
`
	var news entity.News
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&news.ID, &news.Title, &news.Content, &news.CreatedAt, &news.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return &news, nil
}

// Update persists title, content and updated_at.
func (repo *NewsRepo) Update(ctx context.Context, news *entity.News) error {
	const query = `
UPDATE news SET
	title      = ?,
	content    = ?,
	updated_at = ?
WHERE id = ?
`
	res, err := repo.db.ExecContext(ctx, query,
		news.Title, news.Content, news.UpdatedAt, news.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

// Find returns one page of news matching criteria, ordered by id ASC.
func (repo *NewsRepo) Find(ctx context.Context, criteria repository.NewsCriteria, offset, limit int) ([]*entity.News, error) {
	ctx, cancel := context.WithTimeout(ctx, search.DefaultSearchTimeout)
	defer cancel()

	query, args, err := repo.queryBuilder.Select(criteria, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("Find: build query: %w", err)
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Find: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*entity.News, 0, limit)
	for rows.Next() {
		var news entity.News
		err := rows.Scan(&news.ID, &news.Title, &news.Content,
			&news.CreatedAt, &news.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("Find: Scan: %w", err)
		}
		result = append(result, &news)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Find: rows.Err: %w", err)
	}

	return result, nil
}

// Count returns the number of news matching criteria.
func (repo *NewsRepo) Count(ctx context.Context, criteria repository.NewsCriteria) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, search.DefaultSearchTimeout)
	defer cancel()

	query, args, err := repo.queryBuilder.Count(criteria)
	if err != nil {
		return 0, fmt.Errorf("Count: build query: %w", err)
	}

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: QueryRowContext: %w", err)
	}
	return count, nil
}
