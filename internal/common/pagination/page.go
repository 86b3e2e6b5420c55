package pagination

import "fmt"

// Metadata is the "pagination" object of a collection response.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// Validate rejects a page below 1 and a non-positive page size.
func (p Params) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.Limit < 1 {
		return fmt.Errorf("limit must be a positive integer, got %d", p.Limit)
	}
	return nil
}

// Offset is the number of rows before page p: (Page-1) * Limit.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Metadata describes page p of a result with total matching rows.
// An empty result still reports one page, so page 1 is never "past the end".
func (p Params) Metadata(total int64) Metadata {
	pages := 1
	if total > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Metadata{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pages,
	}
}

// PastEnd reports whether page p starts after the last of total rows.
func (p Params) PastEnd(total int64) bool {
	return int64(p.Offset()) >= total
}
