package domain

// Entity is any record held by a console container. Identifiers are already canonical
// ("id", never "_id") by the time a record reaches the domain.
type Entity interface {
	EntityID() string
}

// Status tracks the lifecycle of the last list request of a container.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Descriptor configures a generic container for one domain.
type Descriptor[T Entity] struct {
	// Entity is the canonical entity name (e.g. "categories").
	Entity string
	// Decode builds a typed record from a normalized REST payload.
	Decode func(map[string]any) (T, bool)
	// Predicate applies the domain's equality and flag filters.
	Predicate Predicate[T]
	// SearchFields lists the values matched by the free-text search.
	SearchFields SearchFields[T]
	// Stats derives summary counters from the complete collection.
	Stats StatsReducer[T]
	// Columns describes the spreadsheet export.
	Columns []Column[T]
	// NewDraft returns an empty create/update form, nil when writes are not offered.
	NewDraft func() Draft
	// Prefill copies the held entity into an update form before it is validated.
	Prefill func(Draft, T)
	// Samples returns development seed data.
	Samples func() []T
}

// Draft is a create or update form. It is validated locally before any request is issued
// and never reaches the store when invalid.
type Draft interface {
	Validate() error
	Payload() map[string]any
}

// Column is one exported spreadsheet column.
type Column[T any] struct {
	Header string
	Value  func(T) any
}

func cloneSlice[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	cloned := make([]T, len(items))
	copy(cloned, items)
	return cloned
}

func indexByID[T Entity](items []T, id string) int {
	for index, item := range items {
		if item.EntityID() == id {
			return index
		}
	}
	return -1
}

func replaceByID[T Entity](items []T, id string, replacement T) bool {
	index := indexByID(items, id)
	if index < 0 {
		return false
	}
	items[index] = replacement
	return true
}

func removeByID[T Entity](items []T, id string) ([]T, bool) {
	result := make([]T, 0, len(items))
	removed := false
	for _, item := range items {
		if item.EntityID() == id {
			removed = true
			continue
		}
		result = append(result, item)
	}
	return result, removed
}

func prepend[T any](items []T, item T) []T {
	result := make([]T, 0, len(items)+1)
	result = append(result, item)
	return append(result, items...)
}
