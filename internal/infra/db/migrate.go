package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the news DDL per driver. Every statement is idempotent so
// MigrateUp runs on each start.
var schema = map[string][]string{
	DriverPostgres: {`
CREATE TABLE IF NOT EXISTS news (
    id          SERIAL PRIMARY KEY,
    title       VARCHAR(255) NOT NULL,
    content     TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT chk_news_timestamps CHECK (created_at <= updated_at)
)`,
	},
	DriverSQLite: {`
CREATE TABLE IF NOT EXISTS news (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       VARCHAR(255) NOT NULL,
    content     TEXT NOT NULL,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (created_at <= updated_at)
)`,
	},
}

// MigrateUp creates the news table for driver.
func MigrateUp(ctx context.Context, conn *sql.DB, driver string) error {
	stmts, ok := schema[driver]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	for i, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s statement %d: %w", driver, i+1, err)
		}
	}
	return nil
}
