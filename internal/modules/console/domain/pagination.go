package domain

import (
	"encoding/json"
	"fmt"
)

const (
	DefaultItemsPerPage = 10
	MaxItemsPerPage     = 100
)

// Pagination is the client-side page window over the filtered collection.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
}

// RemotePage mirrors the pagination metadata reported by the backend for the last list.
type RemotePage struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// TotalPagesFor returns max(1, ceil(count/perPage)).
func TotalPagesFor(count, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultItemsPerPage
	}
	if count <= 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}

func NewPagination(perPage int) Pagination {
	if perPage <= 0 || perPage > MaxItemsPerPage {
		perPage = DefaultItemsPerPage
	}
	return Pagination{CurrentPage: 1, ItemsPerPage: perPage, TotalPages: 1}
}

// WithTotal recomputes the totals for count items. The current page is clamped into
// [1, TotalPages] when the collection shrinks underneath it.
func (p Pagination) WithTotal(count int) Pagination {
	if count < 0 {
		count = 0
	}
	if p.ItemsPerPage <= 0 {
		p.ItemsPerPage = DefaultItemsPerPage
	}
	p.TotalItems = count
	p.TotalPages = TotalPagesFor(count, p.ItemsPerPage)
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.CurrentPage > p.TotalPages {
		p.CurrentPage = p.TotalPages
	}
	return p
}

// GoTo moves to page. Pages outside [1, TotalPages] are rejected and p is returned as is.
func (p Pagination) GoTo(page int) (Pagination, error) {
	if page < 1 || page > p.TotalPages {
		return p, fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, page, p.TotalPages)
	}
	p.CurrentPage = page
	return p, nil
}

// WithItemsPerPage changes the page size and always resets to the first page.
func (p Pagination) WithItemsPerPage(perPage int) (Pagination, error) {
	if perPage < 1 || perPage > MaxItemsPerPage {
		return p, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidPageSize, perPage, MaxItemsPerPage)
	}
	p.ItemsPerPage = perPage
	p.CurrentPage = 1
	return p.WithTotal(p.TotalItems), nil
}

func (p Pagination) FirstPage() Pagination {
	p.CurrentPage = 1
	return p
}

func (p Pagination) HasNext() bool     { return p.CurrentPage < p.TotalPages }
func (p Pagination) HasPrevious() bool { return p.CurrentPage > 1 }

// MarshalJSON adds the hasNext and hasPrevious flags the console's page buttons use.
func (p Pagination) MarshalJSON() ([]byte, error) {
	type window Pagination
	return json.Marshal(struct {
		window
		HasNext     bool `json:"hasNext"`
		HasPrevious bool `json:"hasPrevious"`
	}{window: window(p), HasNext: p.HasNext(), HasPrevious: p.HasPrevious()})
}

// Bounds returns the [start, end) window of the current page over count items.
func (p Pagination) Bounds(count int) (int, int) {
	perPage := p.ItemsPerPage
	if perPage <= 0 {
		perPage = DefaultItemsPerPage
	}
	page := p.CurrentPage
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start > count {
		start = count
	}
	end := start + perPage
	if end > count {
		end = count
	}
	return start, end
}

// Slice returns a copy of the current page of items.
func Slice[T any](items []T, p Pagination) []T {
	start, end := p.Bounds(len(items))
	return cloneSlice(items[start:end])
}
