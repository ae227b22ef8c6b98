// Package projection holds read-side shapes shared by the list use cases.
package projection

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is a normalised page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest clamps page and limit into their valid ranges.
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset is the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// Page is one slice of a listed collection.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// NewPage assembles a page, deriving the page count from total.
func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if req.Limit > 0 {
		totalPages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
