// Package news provides the HTTP handlers of the News resource.
// Which routes exist, which fields are read and written and which query
// filters apply are all decided by a resource.Config.
package news

import (
	"time"

	"news-api/internal/domain/entity"
	"news-api/internal/resource"
)

// DTO represents the JSON structure for news data transfer.
// Fields outside the read group are left nil and omitted from the output.
type DTO struct {
	ID        *int64     `json:"id,omitempty" example:"1"`
	Title     *string    `json:"title,omitempty" example:"Launch Update"`
	Content   *string    `json:"content,omitempty" example:"Service goes live today."`
	CreatedAt *time.Time `json:"createdAt,omitempty" example:"2025-07-19T09:00:00Z"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" example:"2025-07-19T09:00:00Z"`
}

// WriteRequest is the body accepted by POST and PUT.
// Unknown JSON fields are ignored; fields outside the write group are dropped.
type WriteRequest struct {
	Title   *string `json:"title" example:"Launch Update"`
	Content *string `json:"content" example:"Service goes live today."`
}

// toDTO projects n onto the read group of cfg.
func toDTO(n *entity.News, cfg resource.Config) DTO {
	var out DTO
	if cfg.Readable(resource.FieldID) {
		id := n.ID
		out.ID = &id
	}
	if cfg.Readable(resource.FieldTitle) {
		title := n.Title
		out.Title = &title
	}
	if cfg.Readable(resource.FieldContent) {
		content := n.Content
		out.Content = &content
	}
	if cfg.Readable(resource.FieldCreatedAt) {
		createdAt := n.CreatedAt
		out.CreatedAt = &createdAt
	}
	if cfg.Readable(resource.FieldUpdatedAt) {
		updatedAt := n.UpdatedAt
		out.UpdatedAt = &updatedAt
	}
	return out
}

func toDTOs(items []*entity.News, cfg resource.Config) []DTO {
	out := make([]DTO, 0, len(items))
	for _, n := range items {
		out = append(out, toDTO(n, cfg))
	}
	return out
}

// bind keeps only the write-group fields of req.
func bind(req WriteRequest, cfg resource.Config) WriteRequest {
	if !cfg.Writable(resource.FieldTitle) {
		req.Title = nil
	}
	if !cfg.Writable(resource.FieldContent) {
		req.Content = nil
	}
	return req
}
