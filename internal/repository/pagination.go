package repository

import "fmt"

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func pageClause(limit, offset int) string {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}

func nonNilCities(cities []string) []string {
	if cities == nil {
		return []string{}
	}
	return cities
}
