// Package pathutil parses path parameters and labels request paths for
// metrics and tracing.
package pathutil

import (
	"errors"
	"strconv"
)

var ErrInvalidID = errors.New("invalid id")

// ParseID reads the {id} segment of a news route. Zero, negatives and values
// past int64 are ErrInvalidID; the parse error itself is not exposed.
func ParseID(segment string) (int64, error) {
	if id, err := strconv.ParseInt(segment, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	return 0, ErrInvalidID
}
