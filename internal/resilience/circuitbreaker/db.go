package circuitbreaker

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/sony/gobreaker"
)

// Store guards a connection pool with a breaker. It satisfies db.DBTX, so
// the persistence adapters take it in place of *sql.DB.
type Store struct {
	name    string
	breaker *gobreaker.CircuitBreaker
	db      *sql.DB
}

// Wrap returns db behind a breaker configured by s. A nil logger uses slog.Default.
func Wrap(db *sql.DB, s Settings, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{name: s.Name, breaker: newBreaker(s, logger), db: db}
}

// QueryContext fails with gobreaker.ErrOpenState without touching db while open.
func (s *Store) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	rows, err := s.breaker.Execute(func() (interface{}, error) {
		return s.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return rows.(*sql.Rows), nil
}

// ExecContext fails with gobreaker.ErrOpenState without touching db while open.
func (s *Store) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return res.(sql.Result), nil
}

// QueryRowContext counts Row.Err towards the breaker. *sql.Row cannot carry a
// caller error, so while open the query still reaches db.
func (s *Store) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	var row *sql.Row
	_, _ = s.breaker.Execute(func() (interface{}, error) {
		row = s.db.QueryRowContext(ctx, query, args...)
		return nil, row.Err()
	})
	if row == nil {
		row = s.db.QueryRowContext(ctx, query, args...)
	}
	return row
}

// State is the current breaker state, read by the health endpoint.
func (s *Store) State() gobreaker.State { return s.breaker.State() }

// Name labels the breaker in logs and metrics.
func (s *Store) Name() string { return s.name }
