package domain

import "strings"

// Filters is the active filter state of a container: a free-text search, equality
// filters (empty means "any") and tri-state boolean flags (absent means "any").
type Filters struct {
	Search string            `json:"search,omitempty"`
	Values map[string]string `json:"values,omitempty"`
	Flags  map[string]bool   `json:"flags,omitempty"`
}

// Predicate applies the domain-specific equality and flag filters to one item.
type Predicate[T any] func(item T, filters Filters) bool

// SearchFields returns the fields searched by the free-text term.
type SearchFields[T any] func(item T) []string

// Normalize returns a trimmed copy with lower-cased keys and empty values dropped.
func (f Filters) Normalize() Filters {
	normalized := Filters{Search: strings.TrimSpace(f.Search)}
	for key, value := range f.Values {
		trimmedKey := strings.ToLower(strings.TrimSpace(key))
		trimmedValue := strings.TrimSpace(value)
		if trimmedKey == "" || trimmedValue == "" {
			continue
		}
		if normalized.Values == nil {
			normalized.Values = map[string]string{}
		}
		normalized.Values[trimmedKey] = trimmedValue
	}
	for key, value := range f.Flags {
		trimmedKey := strings.ToLower(strings.TrimSpace(key))
		if trimmedKey == "" {
			continue
		}
		if normalized.Flags == nil {
			normalized.Flags = map[string]bool{}
		}
		normalized.Flags[trimmedKey] = value
	}
	return normalized
}

// IsZero reports whether no filter is active.
func (f Filters) IsZero() bool {
	n := f.Normalize()
	return n.Search == "" && len(n.Values) == 0 && len(n.Flags) == 0
}

// Value returns the equality filter for key, or "" when unset.
func (f Filters) Value(key string) string {
	return strings.TrimSpace(f.Values[strings.ToLower(strings.TrimSpace(key))])
}

// Flag returns the flag value and whether it is set.
func (f Filters) Flag(key string) (value bool, set bool) {
	value, set = f.Flags[strings.ToLower(strings.TrimSpace(key))]
	return value, set
}

func (f Filters) WithSearch(term string) Filters {
	next := f.Normalize()
	next.Search = strings.TrimSpace(term)
	return next
}

// WithValue sets an equality filter. An empty value clears it.
func (f Filters) WithValue(key, value string) Filters {
	next := f.Normalize()
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return next
	}
	if strings.TrimSpace(value) == "" {
		delete(next.Values, key)
		return next
	}
	if next.Values == nil {
		next.Values = map[string]string{}
	}
	next.Values[key] = strings.TrimSpace(value)
	return next
}

func (f Filters) WithFlag(key string, value bool) Filters {
	next := f.Normalize()
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return next
	}
	if next.Flags == nil {
		next.Flags = map[string]bool{}
	}
	next.Flags[key] = value
	return next
}

func (f Filters) WithoutFlag(key string) Filters {
	next := f.Normalize()
	delete(next.Flags, strings.ToLower(strings.TrimSpace(key)))
	return next
}

// MatchSearch performs a case-insensitive substring match of term against fields.
// An empty term matches everything.
func MatchSearch(term string, fields ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// MatchValue reports whether got equals the equality filter want exactly. An empty
// filter matches. Domains with enumerated values canonicalize want before calling.
func MatchValue(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return want == got
}

// MatchFlag reports whether got satisfies the flag named key. Unset flags match.
func MatchFlag(filters Filters, key string, got bool) bool {
	want, set := filters.Flag(key)
	if !set {
		return true
	}
	return want == got
}

// ApplyFilters returns the items of all that satisfy the predicate and the search term,
// preserving order. The input slice is never modified.
func ApplyFilters[T any](all []T, filters Filters, predicate Predicate[T], fields SearchFields[T]) []T {
	normalized := filters.Normalize()
	result := make([]T, 0, len(all))
	for _, item := range all {
		if predicate != nil && !predicate(item, normalized) {
			continue
		}
		if fields != nil && !MatchSearch(normalized.Search, fields(item)...) {
			continue
		}
		result = append(result, item)
	}
	return result
}
