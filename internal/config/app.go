// Package config assembles the process configuration of the News API from
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"news-api/internal/infra/db"
	pkgconfig "news-api/pkg/config"
)

// AppConfig holds everything cmd/api needs to start.
type AppConfig struct {
	// HTTPAddr is the listen address. Default: ":8080"
	HTTPAddr string

	// Version is reported by /health. Default: "dev"
	Version string

	// ResourcePath points at the YAML resource definition.
	// Empty keeps the built-in News resource.
	ResourcePath string

	// Database selects the driver, DSN and pool settings.
	Database db.Config

	// CircuitBreakerEnabled wraps repository access in a DB circuit breaker.
	// Default: true
	CircuitBreakerEnabled bool

	// WriteRateLimit throttles POST and PUT per client.
	WriteRateLimit pkgconfig.WriteRateLimit

	// TrustProxy makes the client IP come from X-Forwarded-For / X-Real-IP.
	// Default: false
	TrustProxy bool

	// RequestTimeout bounds each request. Default: 15s
	RequestTimeout time.Duration

	// MaxBodyBytes caps request bodies. Default: 1 MiB
	MaxBodyBytes int64

	// ShutdownTimeout is the graceful drain period. Default: 5s
	ShutdownTimeout time.Duration

	Observability ObservabilityConfig
}

// ObservabilityConfig holds logging and tracing settings.
type ObservabilityConfig struct {
	// LogLevel is one of debug, info, warn, error. Default: "info"
	LogLevel string
	// LogFormat is "json" or "text". Default: "json"
	LogFormat string
	// TracingEnabled installs the OpenTelemetry tracer provider.
	TracingEnabled bool
	// TracingSampleRatio is the fraction of root spans sampled. Default: 1.0
	TracingSampleRatio float64
}

// LoadAppConfig loads the configuration from environment variables and validates it.
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		HTTPAddr:              pkgconfig.GetEnvString("HTTP_ADDR", ":8080"),
		Version:               pkgconfig.GetEnvString("VERSION", "dev"),
		ResourcePath:          pkgconfig.GetEnvString("RESOURCE_CONFIG", ""),
		Database:              db.LoadConfigFromEnv(),
		CircuitBreakerEnabled: pkgconfig.GetEnvBool("DB_CIRCUIT_BREAKER_ENABLED", true),
		WriteRateLimit:        pkgconfig.LoadWriteRateLimit(),
		TrustProxy:            pkgconfig.GetEnvBool("TRUST_PROXY", false),
		RequestTimeout:        pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		MaxBodyBytes:          int64(pkgconfig.GetEnvInt("MAX_BODY_BYTES", 1<<20)),
		ShutdownTimeout:       pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		Observability: ObservabilityConfig{
			LogLevel:           pkgconfig.GetEnvString("LOG_LEVEL", "info"),
			LogFormat:          pkgconfig.GetEnvString("LOG_FORMAT", "json"),
			TracingEnabled:     pkgconfig.GetEnvBool("TRACING_ENABLED", false),
			TracingSampleRatio: pkgconfig.GetEnvFloat("TRACING_SAMPLE_RATIO", 1.0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration correctness.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("HTTP_ADDR cannot be empty")
	}

	if err := c.Database.Validate(); err != nil {
		return err
	}

	if err := pkgconfig.ValidateDurationRange(c.RequestTimeout, time.Second, 5*time.Minute); err != nil {
		return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}

	if err := pkgconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	switch strings.ToLower(c.Observability.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Observability.LogFormat)
	}

	if r := c.Observability.TracingSampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATIO must be between 0.0 and 1.0")
	}

	return nil
}
