package shared

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListFilters represents standard admin list filters. A zero Limit disables paging.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string
}

// Offset returns the row offset for the current page.
func (f ListFilters) Offset() int {
	offset := (f.Page - 1) * f.Limit
	if offset < 0 {
		return 0
	}
	return offset
}

// Desc reports whether the descending direction was requested.
func (f ListFilters) Desc() bool {
	return strings.EqualFold(f.SortDir, SortDesc)
}

// ListFiltersFromRequest reads page, limit, search, sort and dir query parameters.
func ListFiltersFromRequest(r *http.Request) ListFilters {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = DefaultPage
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = DefaultLimit
	}
	return ListFilters{
		Page:    page,
		Limit:   limit,
		Search:  strings.TrimSpace(q.Get("search")),
		SortBy:  q.Get("sort"),
		SortDir: q.Get("dir"),
	}
}

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = DefaultLimit
	}
	if page <= 0 {
		page = DefaultPage
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Page is the JSON envelope of an admin list response.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPage wraps rows with pagination metadata, never emitting a null data array.
func NewPage[T any](rows []T, filters ListFilters, total int) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	return Page[T]{Data: rows, Pagination: NewPagination(filters.Page, filters.Limit, total)}
}
