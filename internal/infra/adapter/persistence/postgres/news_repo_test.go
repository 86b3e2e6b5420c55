package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"news-api/internal/domain/entity"
	pg "news-api/internal/infra/adapter/persistence/postgres"
	"news-api/internal/repository"
)

/* ─────────────────────────── ヘルパ ─────────────────────────── */

var newsCols = []string{"id", "title", "content", "created_at", "updated_at"}

func newsRow(rows *sqlmock.Rows, n *entity.News) *sqlmock.Rows {
	return rows.AddRow(n.ID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
}

/* ─────────────────────────── 1. Get ─────────────────────────── */

func TestNewsRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	want := &entity.News{
		ID: 1, Title: "Launch Update", Content: "Service goes live today.",
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, created_at, updated_at")).
		WithArgs(int64(1)).
		WillReturnRows(newsRow(sqlmock.NewRows(newsCols), want))

	repo := pg.NewNewsRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestNewsRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("FROM news")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(newsCols))

	repo := pg.NewNewsRepo(db)
	got, err := repo.Get(context.Background(), 99)
	if err != nil || got != nil {
		t.Fatalf("Get got=%v err=%v, want nil nil", got, err)
	}
}

/* ─────────────────────────── 2. Create ─────────────────────────── */

func TestNewsRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	n := entity.NewNews("Launch Update", "Service goes live today.", now)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO news")).
		WithArgs("Launch Update", "Service goes live today.", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	repo := pg.NewNewsRepo(db)
	if err := repo.Create(context.Background(), n); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if n.ID != 42 {
		t.Fatalf("ID = %d, want 42", n.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestNewsRepo_Create_Error(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO news")).
		WillReturnError(errors.New("db down"))

	repo := pg.NewNewsRepo(db)
	err := repo.Create(context.Background(), &entity.News{Title: "x", Content: "y"})
	if err == nil {
		t.Fatal("want error")
	}
}

/* ─────────────────────────── 3. Update ─────────────────────────── */

func TestNewsRepo_Update(t *testing.T) {
	now := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
	n := &entity.News{ID: 5, Title: "Launch Update", Content: "Service goes live today.", UpdatedAt: now}

	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "updated", affected: 1},
		{name: "missing row", affected: 0, wantErr: entity.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := sqlmock.New()
			defer func() { _ = db.Close() }()

			mock.ExpectExec(regexp.QuoteMeta("UPDATE news SET")).
				WithArgs(n.Title, n.Content, now, int64(5)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := pg.NewNewsRepo(db).Update(context.Background(), n)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Update err=%v, want %v", err, tt.wantErr)
			}
		})
	}
}

/* ─────────────────────────── 4. Find / Count ─────────────────────────── */

func TestNewsRepo_Find(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	row := &entity.News{ID: 2, Title: "Go release", Content: "0123456789", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(regexp.QuoteMeta("FROM news WHERE title ILIKE $1 ORDER BY id ASC LIMIT 1 OFFSET 1")).
		WithArgs("%go%").
		WillReturnRows(newsRow(sqlmock.NewRows(newsCols), row))

	title := "go"
	got, err := pg.NewNewsRepo(db).Find(context.Background(), repository.NewsCriteria{Title: &title}, 1, 1)
	if err != nil {
		t.Fatalf("Find err=%v", err)
	}
	if diff := cmp.Diff([]*entity.News{row}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestNewsRepo_Find_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("FROM news")).
		WillReturnRows(sqlmock.NewRows(newsCols)) // 空集合で OK

	got, err := pg.NewNewsRepo(db).Find(context.Background(), repository.NewsCriteria{}, 10, 1)
	if err != nil {
		t.Fatalf("Find err=%v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestNewsRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	id := int64(3)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM news WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	got, err := pg.NewNewsRepo(db).Count(context.Background(), repository.NewsCriteria{ID: &id})
	if err != nil {
		t.Fatalf("Count err=%v", err)
	}
	if got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
}
