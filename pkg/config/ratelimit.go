package config

import (
	"log/slog"
	"time"
)

// WriteRateLimit configures the per-client token bucket applied to write requests.
type WriteRateLimit struct {
	Enabled bool
	// RPS is the sustained number of write requests per second per client.
	RPS float64
	// Burst is the number of writes a client may make at once.
	Burst int
	// IdleTTL is how long an idle client's bucket is kept.
	IdleTTL time.Duration
}

// DefaultWriteRateLimit returns 10 writes per second with a burst of 20.
func DefaultWriteRateLimit() WriteRateLimit {
	return WriteRateLimit{
		Enabled: true,
		RPS:     10,
		Burst:   20,
		IdleTTL: 10 * time.Minute,
	}
}

// LoadWriteRateLimit loads write rate limiting configuration from environment variables.
//
// Invalid values log a warning and fall back to the defaults instead of failing.
//
// Environment variables:
//   - WRITE_RATE_LIMIT_ENABLED: Enable/disable rate limiting (default: true)
//   - WRITE_RATE_LIMIT_RPS: Requests per second per client (default: 10)
//   - WRITE_RATE_LIMIT_BURST: Burst size (default: 20)
//   - WRITE_RATE_LIMIT_IDLE_TTL: Idle bucket lifetime (default: 10m)
func LoadWriteRateLimit() WriteRateLimit {
	def := DefaultWriteRateLimit()
	cfg := WriteRateLimit{
		Enabled: GetEnvBool("WRITE_RATE_LIMIT_ENABLED", def.Enabled),
		RPS:     GetEnvFloat("WRITE_RATE_LIMIT_RPS", def.RPS),
		Burst:   GetEnvInt("WRITE_RATE_LIMIT_BURST", def.Burst),
		IdleTTL: GetEnvDuration("WRITE_RATE_LIMIT_IDLE_TTL", def.IdleTTL),
	}

	if cfg.RPS <= 0 {
		slog.Warn("invalid WRITE_RATE_LIMIT_RPS, using default",
			slog.Float64("value", cfg.RPS),
			slog.Float64("default", def.RPS))
		cfg.RPS = def.RPS
	}

	if cfg.Burst < 1 {
		slog.Warn("invalid WRITE_RATE_LIMIT_BURST, using default",
			slog.Int("value", cfg.Burst),
			slog.Int("default", def.Burst))
		cfg.Burst = def.Burst
	}

	if err := ValidatePositiveDuration(cfg.IdleTTL); err != nil {
		slog.Warn("invalid WRITE_RATE_LIMIT_IDLE_TTL, using default",
			slog.String("value", cfg.IdleTTL.String()),
			slog.String("default", def.IdleTTL.String()),
			slog.String("error", err.Error()))
		cfg.IdleTTL = def.IdleTTL
	}

	return cfg
}
