package catalog

import "strings"

const DefaultPageSize = 12

// Query describes one filtered, paginated read against the dish catalog.
type Query struct {
	Search   string
	Category string
	Featured bool
	Popular  bool
	Page     int
	PageSize int
}

// Normalized returns a copy with the search term trimmed and the page window
// clamped to sane values.
func (q Query) Normalized() Query {
	q.Search = strings.TrimSpace(q.Search)
	q.Category = strings.TrimSpace(q.Category)
	if q.Page < 0 {
		q.Page = 0
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Offset is the row offset of the requested page.
func (q Query) Offset() int {
	return q.Page * q.PageSize
}

// SameFilters reports whether two queries target the same filtered view,
// ignoring the page window. A filter change invalidates accumulated pages.
func (q Query) SameFilters(other Query) bool {
	return q.Search == other.Search &&
		q.Category == other.Category &&
		q.Featured == other.Featured &&
		q.Popular == other.Popular
}
