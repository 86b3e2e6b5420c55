// Package pagination provides page-based pagination for collection endpoints:
// query parsing, offset calculation, response metadata and metrics.
package pagination

import (
	"math"

	"news-api/pkg/config"
)

// Config holds pagination configuration settings.
// Clients choose the page only; the page size is fixed by ItemsPerPage.
type Config struct {
	DefaultPage  int // Default page number (typically 1)
	ItemsPerPage int // Items returned per page
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, items per page=1
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		ItemsPerPage: 1,
	}
}

// LoadFromEnv overlays environment variables on base.
// Supported environment variables:
//   - NEWS_ITEMS_PER_PAGE: Items per page
//
// Non-positive values keep the value from base.
func LoadFromEnv(base Config) Config {
	if v := config.GetEnvInt("NEWS_ITEMS_PER_PAGE", base.ItemsPerPage); v > 0 {
		base.ItemsPerPage = v
	}
	return base
}

// MaxPage returns the largest page whose offset still fits in an int.
func (c Config) MaxPage() int {
	if c.ItemsPerPage <= 1 {
		return math.MaxInt
	}
	return math.MaxInt/c.ItemsPerPage + 1
}
