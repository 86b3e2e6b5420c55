package db

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB used by the persistence adapters.
// It is also satisfied by circuitbreaker.Store.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}
