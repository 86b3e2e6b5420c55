// Package entity defines the core domain entities and validation logic for the application.
// It contains the News resource along with its field constraints and domain-specific errors.
package entity

import "time"

// News represents a single news item exposed by the API.
// ID is assigned by the store on creation and never changes afterwards.
type News struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNews builds an unsaved News with both timestamps set to now.
func NewNews(title, content string, now time.Time) *News {
	return &News{
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes UpdatedAt after a mutation.
// A clock running behind CreatedAt is clamped so that CreatedAt <= UpdatedAt holds.
func (n *News) Touch(now time.Time) {
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
}
