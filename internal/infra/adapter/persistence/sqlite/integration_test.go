package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-api/internal/domain/entity"
	"news-api/internal/infra/adapter/persistence/sqlite"
	"news-api/internal/infra/db"
	"news-api/internal/repository"
)

func openSQLite(t *testing.T) repository.NewsRepository {
	t.Helper()

	conn, err := db.Open(context.Background(), db.Config{
		Driver: db.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "news.db"),
		Pool:   db.DefaultPool(),
	})
	if err != nil {
		// mattn/go-sqlite3 needs cgo
		t.Skipf("sqlite3 unavailable: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.MigrateUp(context.Background(), conn, db.DriverSQLite))
	return sqlite.NewNewsRepo(conn)
}

func TestNewsRepo_SQLiteRoundTrip(t *testing.T) {
	repo := openSQLite(t)
	ctx := context.Background()
	base := time.Date(2025, 7, 19, 9, 0, 0, 0, time.UTC)

	titles := []string{"Go 1.25 released", "Weekly digest", "GOPHERCON recap", "100% uptime", "Été à Paris"}
	seen := map[int64]bool{}
	for i, title := range titles {
		n := entity.NewNews(title, "Some content body.", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, n))
		assert.False(t, seen[n.ID], "id %d reused", n.ID)
		seen[n.ID] = true
	}

	t.Run("get", func(t *testing.T) {
		got, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Go 1.25 released", got.Title)
		assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
	})

	t.Run("one item per page ordered by id", func(t *testing.T) {
		page, err := repo.Find(ctx, repository.NewsCriteria{}, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, int64(2), page[0].ID)
	})

	t.Run("title is case-insensitive partial", func(t *testing.T) {
		title := "go"
		crit := repository.NewsCriteria{Title: &title}
		total, err := repo.Count(ctx, crit)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("title folds non-ASCII case", func(t *testing.T) {
		for _, q := range []string{"été", "ÉTÉ", "À PARIS"} {
			title := q
			got, err := repo.Find(ctx, repository.NewsCriteria{Title: &title}, 0, 10)
			require.NoError(t, err)
			require.Len(t, got, 1, "title=%q", q)
			assert.Equal(t, "Été à Paris", got[0].Title)
		}
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		title := "%"
		total, err := repo.Count(ctx, repository.NewsCriteria{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("id exact", func(t *testing.T) {
		id := int64(3)
		got, err := repo.Find(ctx, repository.NewsCriteria{ID: &id}, 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "GOPHERCON recap", got[0].Title)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		got, err := repo.Find(ctx, repository.NewsCriteria{}, 100, 1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("update", func(t *testing.T) {
		n, err := repo.Get(ctx, 2)
		require.NoError(t, err)
		n.Title = "Weekly digest #2"
		n.Touch(base.Add(time.Hour))
		require.NoError(t, repo.Update(ctx, n))

		got, err := repo.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Weekly digest #2", got.Title)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	})
}
