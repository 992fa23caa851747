package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var sortColumns = map[string]string{"created_at": "created_at", "createAt": "created_at", "title": "title"}

func TestParseListQueryDefaults(t *testing.T) {
	q := ParseListQuery("", "", "", "", "", sortColumns, "created_at")
	assert.Equal(t, ListQuery{Page: 1, Limit: 9, SortBy: "created_at", SortOrder: "desc"}, q)
	assert.Equal(t, 0, q.Offset())
	assert.Equal(t, "created_at desc", q.OrderClause())
}

func TestParseListQuery(t *testing.T) {
	q := ParseListQuery("3", "20", " golang ", "title", "ASC", sortColumns, "created_at")
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, 40, q.Offset())
	assert.Equal(t, "golang", q.Search)
	assert.Equal(t, "title asc", q.OrderClause())

	q = ParseListQuery("-1", "abc", "", "price; DROP TABLE courses", "sideways", sortColumns, "created_at")
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 9, q.Limit)
	assert.Equal(t, "created_at desc", q.OrderClause())

	q = ParseListQuery("1", "1000", "", "createAt", "", sortColumns, "created_at")
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, "created_at", q.SortBy)
}
