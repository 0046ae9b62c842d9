package pagination

// DefaultPageSize is used whenever the caller asks for a page size below 1.
const DefaultPageSize = 10

// Pagination holds normalized page parameters for list queries.
// Construct it with New; treat values as read-only afterwards.
type Pagination struct {
	Page     int
	PageSize int
}

// New normalizes raw page parameters: the page is clamped to at least 1
// and a page size below 1 falls back to DefaultPageSize. No upper bound
// is enforced on the page size.
func New(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
