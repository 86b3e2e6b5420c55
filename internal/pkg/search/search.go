// Package search holds helpers shared by the SQL adapters for LIKE-style matching.
package search

import (
	"strings"
	"time"
)

// DefaultSearchTimeout bounds filtered list and count queries.
const DefaultSearchTimeout = 5 * time.Second

// EscapeChar is the escape character used in LIKE patterns.
const EscapeChar = `\`

var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike escapes LIKE wildcards so the value matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// EscapeILIKE returns a substring pattern for ILIKE/LIKE with wildcards in s escaped.
func EscapeILIKE(s string) string {
	return "%" + EscapeLike(s) + "%"
}
