// Package news provides use cases for the News resource.
// It implements creation, retrieval, filtered listing and partial update,
// applying field constraints and timestamps before delegating to the repository.
package news

import "errors"

// Sentinel errors for news use case operations.
var (
	// ErrNewsNotFound indicates that the requested news does not exist.
	ErrNewsNotFound = errors.New("news not found")

	// ErrInvalidNewsID indicates that the provided news ID is invalid.
	// News IDs must be positive integers.
	ErrInvalidNewsID = errors.New("invalid news id")
)
