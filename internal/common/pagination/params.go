package pagination

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidPage rejects a page that is not an integer in [1, Config.MaxPage].
var ErrInvalidPage = errors.New("invalid query parameter: page must be a positive integer")

// Params is the page window of one list request.
type Params struct {
	Page  int // 1-based
	Limit int
}

// ParseQueryParams reads ?page= from r. The page size always comes from
// cfg.ItemsPerPage; a client "limit" is ignored.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	p := Params{Page: cfg.DefaultPage, Limit: cfg.ItemsPerPage}

	raw := r.URL.Query().Get("page")
	if raw == "" {
		return p, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 || page > cfg.MaxPage() {
		return p, ErrInvalidPage
	}
	p.Page = page
	return p, nil
}
