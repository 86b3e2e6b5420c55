package news

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"news-api/internal/repository"
	"news-api/internal/resource"
)

// ErrInvalidIDFilter is returned when the id query parameter is not an integer.
var ErrInvalidIDFilter = errors.New("invalid query parameter: id must be an integer")

// parseCriteria builds repository criteria from the query parameters that cfg
// declares as filters. Other parameters and empty values are ignored.
func parseCriteria(q url.Values, cfg resource.Config) (repository.NewsCriteria, error) {
	var c repository.NewsCriteria

	if _, ok := cfg.FilterMode(resource.FieldID); ok {
		if v := strings.TrimSpace(q.Get(resource.FieldID)); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return c, ErrInvalidIDFilter
			}
			c.ID = &id
		}
	}

	if mode, ok := cfg.FilterMode(resource.FieldTitle); ok {
		if v := q.Get(resource.FieldTitle); v != "" {
			c.Title = &v
			c.TitleExact = mode == resource.MatchExact
		}
	}

	return c, nil
}
