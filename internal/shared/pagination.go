package shared

import "math"

// DefaultPageSize is applied when a listing request omits the page size.
const DefaultPageSize = 10

// Pagination carries metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination normalises page inputs and computes pagination metadata.
// Pages are 1-indexed.
func NewPagination(page, pageSize, total int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

// Offset returns the row offset for the pagination window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
