package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"news-api/internal/common/pagination"
	appconfig "news-api/internal/config"
	pgRepo "news-api/internal/infra/adapter/persistence/postgres"
	sqliteRepo "news-api/internal/infra/adapter/persistence/sqlite"
	"news-api/internal/infra/db"
	"news-api/internal/observability/logging"
	"news-api/internal/observability/metrics"
	"news-api/internal/observability/tracing"
	"news-api/internal/repository"
	"news-api/internal/resilience/circuitbreaker"
	"news-api/internal/resilience/retry"
	"news-api/internal/resource"

	newsUC "news-api/internal/usecase/news"

	hhttp "news-api/internal/handler/http"
	hnews "news-api/internal/handler/http/news"
	"news-api/internal/handler/http/pathutil"
	"news-api/internal/handler/http/requestid"

	_ "news-api/docs" // swagger docs
)

// @title           News API
// @version         1.0
// @description     ニュースリソースの REST API
// @description     ニュースの作成・取得・一覧（ページネーション、フィルタ）を提供します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg, err := appconfig.LoadAppConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)

	res, err := resource.Load(cfg.ResourcePath)
	if err != nil {
		logger.Error("failed to load resource definition",
			slog.String("path", cfg.ResourcePath),
			slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := initTracing(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	database := initDatabase(logger, cfg.Database)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components := setupServer(logger, cfg, res, database)

	if err := runServer(logger, cfg, components, database); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes and returns a structured logger based on configuration.
func initLogger(cfg *appconfig.AppConfig) *slog.Logger {
	logger := logging.New(os.Stdout,
		logging.ParseLevel(cfg.Observability.LogLevel),
		cfg.Observability.LogFormat)
	slog.SetDefault(logger)
	return logger
}

// initTracing installs the tracer provider. With tracing disabled nothing is sampled,
// but trace context is still propagated.
func initTracing(cfg *appconfig.AppConfig) func(context.Context) error {
	ratio := 0.0
	if cfg.Observability.TracingEnabled {
		ratio = cfg.Observability.TracingSampleRatio
	}
	return tracing.Init(tracing.Config{ServiceName: "news-api", SampleRatio: ratio})
}

// initDatabase opens the database connection and runs migrations.
// Opening is retried while the database is still starting.
func initDatabase(logger *slog.Logger, cfg db.Config) *sql.DB {
	var database *sql.DB
	err := retry.Startup(logger).Do(context.Background(), "open database", func(ctx context.Context) error {
		var err error
		database, err = db.Open(ctx, cfg)
		return err
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	if err := db.MigrateUp(context.Background(), database, cfg.Driver); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler      http.Handler
	WriteLimiter *hhttp.WriteLimiter
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, cfg *appconfig.AppConfig, res resource.Config, database *sql.DB) *ServerComponents {
	var conn db.DBTX = database
	var breaker hhttp.BreakerState
	if cfg.CircuitBreakerEnabled {
		store := circuitbreaker.Wrap(database, circuitbreaker.StoreSettings(), logger)
		conn, breaker = store, store
		logger.Info("database circuit breaker enabled")
	} else {
		logger.Warn("database circuit breaker is DISABLED")
	}

	newsSvc := newsUC.NewService(newsRepository(cfg.Database.Driver, conn))

	var limiter *hhttp.WriteLimiter
	if cfg.WriteRateLimit.Enabled {
		limiter = hhttp.NewWriteLimiter(cfg.WriteRateLimit, cfg.TrustProxy)
		logger.Info("write rate limiting initialized",
			slog.Float64("rps", cfg.WriteRateLimit.RPS),
			slog.Int("burst", cfg.WriteRateLimit.Burst),
			slog.Bool("trust_proxy", cfg.TrustProxy))
	} else {
		logger.Warn("write rate limiting is DISABLED - not recommended for production")
	}

	paginationCfg := pagination.LoadFromEnv(pagination.Config{
		DefaultPage:  1,
		ItemsPerPage: res.ItemsPerPage,
	})

	mux := http.NewServeMux()

	// ヘルスチェック・監視エンドポイント
	mux.Handle("GET /health", &hhttp.HealthHandler{
		DB:      database,
		Driver:  cfg.Database.Driver,
		Version: cfg.Version,
		Breaker: breaker,
		Limiter: limiter,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	// Swagger UI
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hnews.Register(mux, newsSvc, res, paginationCfg, logger)

	logger.Info("news resource registered",
		slog.String("path", res.CollectionPath()),
		slog.Any("item_operations", res.ItemOperations),
		slog.Any("collection_operations", res.CollectionOperations),
		slog.Int("items_per_page", paginationCfg.ItemsPerPage))

	return &ServerComponents{
		Handler:      applyMiddleware(logger, cfg, mux, pathutil.NewRoutes(res.CollectionPath()), limiter),
		WriteLimiter: limiter,
	}
}

// newsRepository selects the adapter matching the database driver.
func newsRepository(driver string, conn db.DBTX) repository.NewsRepository {
	if driver == db.DriverSQLite {
		return sqliteRepo.NewNewsRepo(conn)
	}
	return pgRepo.NewNewsRepo(conn)
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Recovery → Request ID → Tracing → Logging → CORS → Metrics →
// Input validation → Timeout → Body limit → Write rate limit.
func applyMiddleware(logger *slog.Logger, cfg *appconfig.AppConfig, handler http.Handler, routes *pathutil.Routes, limiter *hhttp.WriteLimiter) http.Handler {
	corsConfig, err := hhttp.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}

	mws := []hhttp.Middleware{
		hhttp.Recover(logger),
		requestid.Middleware,
		tracing.Middleware(routes),
		hhttp.Logging(logger),
	}

	if corsConfig.Enabled() {
		mws = append(mws, hhttp.CORS(corsConfig))
		logger.Info("CORS enabled",
			slog.Any("allowed_origins", corsConfig.AllowedOrigins),
			slog.Any("allowed_methods", corsConfig.AllowedMethods),
			slog.Int("max_age", corsConfig.MaxAge))
	}

	mws = append(mws,
		hhttp.Metrics(routes),
		hhttp.InputValidation(),
		hhttp.Timeout(cfg.RequestTimeout),
		hhttp.LimitRequestBody(cfg.MaxBodyBytes),
	)
	if limiter != nil {
		mws = append(mws, limiter.Limit)
	}
	return hhttp.Chain(handler, mws...)
}

// runServer starts the HTTP server and its background workers and blocks
// until SIGINT/SIGTERM, then shuts everything down gracefully.
func runServer(logger *slog.Logger, cfg *appconfig.AppConfig, components *ServerComponents, database *sql.DB) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		metrics.CollectDBStats(gctx, database, 15*time.Second)
		return nil
	})

	if components.WriteLimiter != nil {
		interval := hhttp.LoadCleanupIntervalFromEnv()
		g.Go(func() error {
			components.WriteLimiter.Sweep(gctx, interval)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
