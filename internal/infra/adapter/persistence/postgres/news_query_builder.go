// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	sq "github.com/Masterminds/squirrel"

	"news-api/internal/pkg/search"
	"news-api/internal/repository"
)

var newsColumns = []string{"id", "title", "content", "created_at", "updated_at"}

// NewsQueryBuilder builds filtered SELECT and COUNT queries for the news table.
// COUNT and SELECT share the same WHERE conditions.
// PostgreSQL-specific: ILIKE for case-insensitive matching and $N placeholders.
type NewsQueryBuilder struct {
	sb sq.StatementBuilderType
}

// NewNewsQueryBuilder creates a new query builder instance.
func NewNewsQueryBuilder() *NewsQueryBuilder {
	return &NewsQueryBuilder{sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

// Conditions returns one predicate per set criterion, in id, title order.
func (qb *NewsQueryBuilder) Conditions(c repository.NewsCriteria) []sq.Sqlizer {
	var conds []sq.Sqlizer
	if c.ID != nil {
		conds = append(conds, sq.Eq{"id": *c.ID})
	}
	if c.Title != nil {
		if c.TitleExact {
			conds = append(conds, sq.Eq{"title": *c.Title})
		} else {
			conds = append(conds, sq.ILike{"title": search.EscapeILIKE(*c.Title)})
		}
	}
	return conds
}

// Select builds the paginated query ordered by id.
func (qb *NewsQueryBuilder) Select(c repository.NewsCriteria, offset, limit int) (string, []interface{}, error) {
	q := qb.sb.Select(newsColumns...).From("news")
	for _, cond := range qb.Conditions(c) {
		q = q.Where(cond)
	}
	return q.OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

// Count builds the COUNT query for the same criteria.
func (qb *NewsQueryBuilder) Count(c repository.NewsCriteria) (string, []interface{}, error) {
	q := qb.sb.Select("COUNT(*)").From("news")
	for _, cond := range qb.Conditions(c) {
		q = q.Where(cond)
	}
	return q.ToSql()
}
