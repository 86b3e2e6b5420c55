package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"

	"news-api/pkg/config"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// sqliteDriverName is the go-sqlite3 driver registered with the SQL functions
// the adapters rely on. DriverSQLite connections are opened through it.
const sqliteDriverName = "sqlite3_news"

// SQLiteLowerFunc is a Unicode-aware lower() for SQLite, whose built-in
// lower() and LIKE only fold ASCII letters.
const SQLiteLowerFunc = "ulower"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(SQLiteLowerFunc, strings.ToLower, true)
		},
	})
}

// pingTimeout bounds the connectivity check done by Open.
const pingTimeout = 5 * time.Second

var (
	// ErrUnsupportedDriver is returned for a driver other than pgx or sqlite3.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	// ErrMissingDSN is returned when DATABASE_URL is empty.
	ErrMissingDSN = errors.New("DATABASE_URL not set")
)

// Pool sizes the database/sql connection pool.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

// DefaultPool suits a single API replica against PostgreSQL.
func DefaultPool() Pool {
	return Pool{
		MaxOpen:     25,
		MaxIdle:     10,
		MaxLifetime: time.Hour,
		MaxIdleTime: 30 * time.Minute,
	}
}

// forDriver pins SQLite to one connection; it serialises writers and a
// second connection only earns "database is locked".
func (p Pool) forDriver(driver string) Pool {
	if driver == DriverSQLite {
		p.MaxOpen, p.MaxIdle = 1, 1
	}
	return p
}

func (p Pool) apply(conn *sql.DB) {
	conn.SetMaxOpenConns(p.MaxOpen)
	conn.SetMaxIdleConns(p.MaxIdle)
	conn.SetConnMaxLifetime(p.MaxLifetime)
	conn.SetConnMaxIdleTime(p.MaxIdleTime)
}

// Config selects the driver and DSN of the store.
type Config struct {
	Driver string
	DSN    string
	Pool   Pool
}

// LoadConfigFromEnv reads DATABASE_DRIVER, DATABASE_URL and the DB_* pool
// settings.
func LoadConfigFromEnv() Config {
	return Config{
		Driver: config.GetEnvString("DATABASE_DRIVER", DriverPostgres),
		DSN:    config.GetEnvString("DATABASE_URL", ""),
		Pool:   poolFromEnv(),
	}
}

// Validate checks that the driver is known and a DSN is set.
func (c Config) Validate() error {
	switch {
	case c.Driver != DriverPostgres && c.Driver != DriverSQLite:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	case c.DSN == "":
		return ErrMissingDSN
	}
	return nil
}

// Open returns a pool that has answered a ping. The ping is bounded by ctx and
// pingTimeout, whichever ends first.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	driverName := cfg.Driver
	if cfg.Driver == DriverSQLite {
		driverName = sqliteDriverName
	}
	conn, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	pool := cfg.Pool.forDriver(cfg.Driver)
	pool.apply(conn)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	slog.Info("database connected",
		slog.String("driver", cfg.Driver),
		slog.Int("max_open_conns", pool.MaxOpen),
		slog.Int("max_idle_conns", pool.MaxIdle),
		slog.Duration("conn_max_lifetime", pool.MaxLifetime),
		slog.Duration("conn_max_idle_time", pool.MaxIdleTime))
	return conn, nil
}

// poolFromEnv overlays DB_* variables on DefaultPool. Values that are not
// positive keep the default.
func poolFromEnv() Pool {
	p := DefaultPool()
	p.MaxOpen = positive(config.GetEnvInt("DB_MAX_OPEN_CONNS", p.MaxOpen), p.MaxOpen)
	p.MaxIdle = positive(config.GetEnvInt("DB_MAX_IDLE_CONNS", p.MaxIdle), p.MaxIdle)
	p.MaxLifetime = positive(config.GetEnvDuration("DB_CONN_MAX_LIFETIME", p.MaxLifetime), p.MaxLifetime)
	p.MaxIdleTime = positive(config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", p.MaxIdleTime), p.MaxIdleTime)
	return p
}

func positive[T int | time.Duration](v, def T) T {
	if v > 0 {
		return v
	}
	return def
}
