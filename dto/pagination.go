package dto

// Pagination describes one page of a list response
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Paginated is the shared list envelope: {data:[...], pagination:{...}}
type Paginated[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPaginated builds the envelope, deriving totalPages from total and limit.
func NewPaginated[T any](data []T, total int64, page, limit int) Paginated[T] {
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	if data == nil {
		data = []T{}
	}
	return Paginated[T]{
		Data: data,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
}

// ListQuery holds the common page/limit/search/sort query parameters
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Sort   string
}

// Normalize clamps paging values to sane defaults.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}

// Offset returns the row offset for the current page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
