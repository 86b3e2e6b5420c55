package postgres

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

type NewsRepo struct {
	db           db.DBTX
	queryBuilder *NewsQueryBuilder
}

func NewNewsRepo(conn db.DBTX) repository.NewsRepository {
	return &NewsRepo{
		db:           conn,
		queryBuilder: NewNewsQueryBuilder(),
	}
}

func (repo *NewsRepo) Create(ctx context.Context, news *entity.News) error {
	const query = `
INSERT INTO news
       (title, content, created_at, updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		news.Title, news.Content, news.CreatedAt, news.UpdatedAt,
	).Scan(&news.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *NewsRepo) Get(ctx context.Context, id int64) (*entity.News, error) {
	const query = `
SELECT id, title, content, created_at, updated_at
FROM news
WHERE id = $1
LIMIT 1`
	var news entity.News
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&news.ID, &news.Title, &news.Content, &news.CreatedAt, &news.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &news, nil
}

func (repo *NewsRepo) Update(ctx context.Context, news *entity.News) error {
	const query = `
UPDATE news SET
       title      = $1,
       content    = $2,
       updated_at = $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query,
		news.Title, news.Content, news.UpdatedAt, news.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
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
		return nil, fmt.Errorf("Find: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*entity.News, 0, limit)
	for rows.Next() {
		var news entity.News
		if err := rows.Scan(&news.ID, &news.Title, &news.Content,
			&news.CreatedAt, &news.UpdatedAt); err != nil {
			return nil, fmt.Errorf("Find: Scan: %w", err)
		}
		result = append(result, &news)
	}
	return result, rows.Err()
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
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
