package validators

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 9
	MaxLimit     = 100
)

// ListQuery is a normalized listing request. SortBy is always a column from
// the allowed set, so it is safe to interpolate into ORDER BY.
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// OrderClause renders "column direction".
func (q ListQuery) OrderClause() string {
	return q.SortBy + " " + q.SortOrder
}

// ParseListQuery falls back to defaults for missing or malformed values
// instead of rejecting the request. allowed maps accepted sortBy values to
// column names; defaultSort is used when sortBy is missing or unknown.
func ParseListQuery(page, limit, search, sortBy, sortOrder string, allowed map[string]string, defaultSort string) ListQuery {
	q := ListQuery{
		Page:      atoiDefault(page, DefaultPage),
		Limit:     atoiDefault(limit, DefaultLimit),
		Search:    strings.TrimSpace(search),
		SortBy:    defaultSort,
		SortOrder: "desc",
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if col, ok := allowed[strings.TrimSpace(sortBy)]; ok {
		q.SortBy = col
	}
	if strings.EqualFold(strings.TrimSpace(sortOrder), "asc") {
		q.SortOrder = "asc"
	}
	return q
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
