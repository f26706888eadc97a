package domain

import (
	"net/url"
	"strconv"
)

// PagedQuery is one page request of a backend list.
type PagedQuery struct {
	Page  int
	Limit int
}

// Normalize returns a sanitized copy applying defaults and bounds.
func (q PagedQuery) Normalize() PagedQuery {
	normalized := q
	if normalized.Page <= 0 {
		normalized.Page = 1
	}
	if normalized.Limit <= 0 {
		normalized.Limit = DefaultItemsPerPage
	}
	if normalized.Limit > MaxItemsPerPage {
		normalized.Limit = MaxItemsPerPage
	}
	return normalized
}

// ToURLValues returns the normalized page and limit parameters.
func (q PagedQuery) ToURLValues() url.Values {
	normalized := q.Normalize()
	values := url.Values{}
	values.Set("page", strconv.Itoa(normalized.Page))
	values.Set("limit", strconv.Itoa(normalized.Limit))
	return values
}
