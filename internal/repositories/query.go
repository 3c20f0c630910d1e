package repositories

import "gorm.io/gorm"

const (
	DefaultPage  = 1
	DefaultLimit = 4
)

// ListQuery carries the shaping parameters the query middleware parsed
// from the request: pagination, free-text search, a column filter map
// and sort direction.
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	Filters   map[string]interface{}
	SortOrder string
}

func NewListQuery() ListQuery {
	return ListQuery{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortOrder: "ASC",
	}
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func (q ListQuery) orderClause(column string) string {
	if q.SortOrder == "DESC" {
		return column + " DESC"
	}
	return column + " ASC"
}

// applyPagination appends LIMIT/OFFSET from the query.
func applyPagination(db *gorm.DB, q ListQuery) *gorm.DB {
	return db.Limit(q.Limit).Offset(q.Offset())
}

// searchPattern builds a case-insensitive LIKE pattern. Matching uses
// LOWER(col) LIKE LOWER(?) so the same query plan works on Postgres,
// MySQL and the SQLite test database.
func searchPattern(term string) string {
	return "%" + term + "%"
}
