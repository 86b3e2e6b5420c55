// Package config reads process configuration from the environment.
// Malformed values never abort startup: they are logged and replaced by
// the caller's default.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// fromEnv parses the trimmed value of key, falling back to def when the
// variable is unset, blank or rejected by parse.
func fromEnv[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("ignoring malformed environment variable",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def),
			slog.String("error", err.Error()))
		return def
	}
	return v
}

// GetEnvString returns the value of key, or def when it is unset.
func GetEnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvInt reads a base-10 integer such as NEWS_ITEMS_PER_PAGE.
func GetEnvInt(key string, def int) int {
	return fromEnv(key, def, strconv.Atoi)
}

// GetEnvFloat reads a float such as WRITE_RATE_LIMIT_RPS.
func GetEnvFloat(key string, def float64) float64 {
	return fromEnv(key, def, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvBool accepts the spellings of strconv.ParseBool ("1", "true", "F", ...).
func GetEnvBool(key string, def bool) bool {
	return fromEnv(key, def, strconv.ParseBool)
}

// GetEnvDuration reads a time.ParseDuration string such as "1m30s".
func GetEnvDuration(key string, def time.Duration) time.Duration {
	return fromEnv(key, def, time.ParseDuration)
}
