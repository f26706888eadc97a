package domain

import (
	"sort"
	"strings"
	"time"
)

// AnalyticsRequest holds the parameters of one dashboard fetch.
type AnalyticsRequest struct {
	Identifier string            `json:"identifier,omitempty"`
	Query      map[string]string `json:"query,omitempty"`
}

// Clone returns a trimmed deep copy without empty query entries.
func (r AnalyticsRequest) Clone() AnalyticsRequest {
	cloned := AnalyticsRequest{Identifier: strings.TrimSpace(r.Identifier)}
	if len(r.Query) == 0 {
		return cloned
	}
	cloned.Query = make(map[string]string, len(r.Query))
	for key, value := range r.Query {
		trimmedKey := strings.TrimSpace(key)
		trimmedValue := strings.TrimSpace(value)
		if trimmedKey == "" || trimmedValue == "" {
			continue
		}
		cloned.Query[trimmedKey] = trimmedValue
	}
	return cloned
}

// CanonicalKey identifies the request independently of map ordering.
func (r AnalyticsRequest) CanonicalKey() string {
	keys := make([]string, 0, len(r.Query))
	for key := range r.Query {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(strings.TrimSpace(r.Identifier))
	for _, key := range keys {
		b.WriteString("|")
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(r.Query[key])
	}
	return b.String()
}

// AnalyticsSnapshot is a dashboard payload. Stale is set when the last fetch failed and
// the previous good payload is served instead.
type AnalyticsSnapshot struct {
	Key       string           `json:"key"`
	Request   AnalyticsRequest `json:"request"`
	Payload   any              `json:"payload"`
	FetchedAt time.Time        `json:"fetchedAt"`
	Stale     bool             `json:"stale"`
}
