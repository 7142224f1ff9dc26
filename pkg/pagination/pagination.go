// Package pagination provides page/offset handling for the receipt
// journal listing.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// defaultPerPage keeps a receipt page at roughly one screen of rows.
	defaultPerPage = 20
	// maxPerPage bounds what a client can request in one page.
	maxPerPage = 100
)

// Params is a one-based page request with the derived SQL offset.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns the first page at the default page size.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: defaultPerPage}
}

// FromRequest reads the page and per_page query parameters. Values that are
// missing, non-numeric, non-positive, or above maxPerPage fall back to the
// defaults.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil && v > 0 && v <= maxPerPage {
		p.PerPage = v
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// Result is one page of items together with the paging envelope the widget
// uses to render next/previous controls.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult assembles a page from the items and the total row count. A
// non-positive PerPage is treated as the default so the page math never
// divides by zero.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	totalPages := (totalCount + perPage - 1) / perPage

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    perPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
