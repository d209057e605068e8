package persistence

import (
	"github.com/platebooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyOrdering applies a whitelisted ORDER BY clause from the filter
func applyOrdering(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	dir := ValidateSortOrder(filter.OrderDir)
	return query.Order(field + " " + dir)
}

// applyPagination applies LIMIT/OFFSET from the filter. A zero page size
// leaves the query unbounded.
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize <= 0 {
		return query
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * filter.PageSize
	}
	return query.Offset(offset).Limit(filter.PageSize)
}

// paginateSlice carves the filter's page out of rows already filtered in
// memory, mirroring applyPagination for cuts SQL cannot express. A zero
// page size returns all rows.
func paginateSlice[T any](rows []T, filter shared.Filter) []T {
	if filter.PageSize <= 0 {
		return rows
	}
	start := 0
	if filter.Page > 1 {
		start = (filter.Page - 1) * filter.PageSize
	}
	if start >= len(rows) {
		return []T{}
	}
	end := start + filter.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
