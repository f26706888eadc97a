package domain

import (
	"strings"

	"adminConsole/internal/shared/normalization"
)

// ResponseCodeSuccess is the only responseCode the backend uses for success.
const ResponseCodeSuccess = 1

// Envelope is the application-level wrapper every backend response uses.
type Envelope struct {
	ResponseCode    int    `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
	Response        any    `json:"response"`
}

// Succeeded reports whether the envelope carries responseCode 1.
func (e *Envelope) Succeeded() bool {
	return e != nil && e.ResponseCode == ResponseCodeSuccess
}

// Err returns a BusinessError for unsuccessful envelopes and nil otherwise.
func (e *Envelope) Err() error {
	if e == nil {
		return ErrMalformedResponse
	}
	if e.Succeeded() {
		return nil
	}
	return BusinessError{Code: e.ResponseCode, Message: strings.TrimSpace(e.ResponseMessage)}
}

// Record returns the single entity carried by the envelope. Wrappers such as
// {"data": {...}} or {"<key>": {...}} are unwrapped when keys are provided.
func (e *Envelope) Record(keys ...string) map[string]any {
	if e == nil {
		return nil
	}
	container := normalization.MapFromPayload(e.Response)
	if len(container) == 0 {
		return nil
	}
	if nested := extractMap(container, keys...); len(nested) > 0 {
		return nested
	}
	return container
}

// Records returns the list carried by the envelope. The response may be a bare array
// or an object holding the array under one of keys (defaults: items, docs, data).
func (e *Envelope) Records(keys ...string) []map[string]any {
	if e == nil || e.Response == nil {
		return nil
	}
	if items := coerceToMapSlice(e.Response); items != nil {
		return items
	}
	container, ok := e.Response.(map[string]any)
	if !ok {
		return nil
	}
	lookup := append(append([]string{}, keys...), "items", "docs", "data", "results")
	return extractItemMaps(container, lookup...)
}

// AllRecords returns the unpaginated shadow collection when the backend sends one
// alongside the current page (key "allItems" or "all").
func (e *Envelope) AllRecords() ([]map[string]any, bool) {
	if e == nil {
		return nil, false
	}
	container, ok := e.Response.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range []string{"allItems", "all"} {
		if raw, exists := container[key]; exists {
			return coerceToMapSlice(raw), true
		}
	}
	return nil, false
}

// Page extracts server pagination metadata. Missing fields stay zero.
func (e *Envelope) Page() RemotePage {
	if e == nil {
		return RemotePage{}
	}
	container, ok := e.Response.(map[string]any)
	if !ok {
		return RemotePage{}
	}
	meta := container
	if nested := extractMap(container, "pagination", "meta"); len(nested) > 0 {
		meta = nested
	}
	return RemotePage{
		Page:       firstInt(meta, "page", "currentPage"),
		Limit:      firstInt(meta, "limit", "itemsPerPage", "perPage"),
		TotalItems: firstInt(meta, "total", "totalItems", "totalDocs", "count"),
		TotalPages: firstInt(meta, "totalPages", "pages"),
	}
}

func firstInt(container map[string]any, keys ...string) int {
	for _, key := range keys {
		if value := normalization.AsInt(container[key]); value > 0 {
			return value
		}
	}
	return 0
}

func extractItemMaps(container map[string]any, keys ...string) []map[string]any {
	for _, key := range keys {
		if raw, ok := container[key]; ok {
			if items := coerceToMapSlice(raw); items != nil {
				return items
			}
		}
	}
	return nil
}

func coerceToMapSlice(value any) []map[string]any {
	items := normalization.AsInterfaceSlice(value)
	if items == nil {
		return nil
	}
	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if mapped, ok := item.(map[string]any); ok {
			result = append(result, mapped)
		}
	}
	return result
}

func extractMap(container map[string]any, keys ...string) map[string]any {
	if len(container) == 0 {
		return nil
	}
	for _, key := range keys {
		if mapped, ok := container[key].(map[string]any); ok && len(mapped) > 0 {
			return mapped
		}
	}
	return nil
}
