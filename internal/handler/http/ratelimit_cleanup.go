package http

import (
	"context"
	"log/slog"
	"time"

	"news-api/pkg/config"
)

// DefaultCleanupInterval applies when RATELIMIT_CLEANUP_INTERVAL is unset or
// not positive.
const DefaultCleanupInterval = 5 * time.Minute

// LoadCleanupIntervalFromEnv reads RATELIMIT_CLEANUP_INTERVAL.
func LoadCleanupIntervalFromEnv() time.Duration {
	every := config.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval)
	if config.ValidatePositiveDuration(every) != nil {
		return DefaultCleanupInterval
	}
	return every
}

// Sweep drops idle clients every interval until ctx ends. It blocks.
func (wl *WriteLimiter) Sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	log := slog.With(slog.String("component", "write_rate_limiter"))
	log.Info("idle client sweep started", slog.Duration("interval", every))
	for {
		select {
		case <-ctx.Done():
			log.Info("idle client sweep stopped")
			return
		case <-ticker.C:
			if removed := wl.Cleanup(); removed > 0 {
				log.Debug("idle clients dropped",
					slog.Int("removed", removed),
					slog.Int("active_clients", wl.Len()))
			}
		}
	}
}
