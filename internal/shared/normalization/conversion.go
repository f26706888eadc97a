package normalization

import (
	"strconv"
	"strings"
	"time"
)

// AsString trims and returns the string representation of value when possible.
func AsString(value any) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// AsIdentifier returns a trimmed identifier, accepting both string and numeric keys
// since the backend emits either depending on the collection.
func AsIdentifier(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return ""
	}
}

// AsInt coerces numeric values supported by the REST layer into Go ints.
func AsInt(value any) int {
	switch typed := value.(type) {
	case float64:
		return int(typed)
	case float32:
		return int(typed)
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			if parsed, err := strconv.Atoi(trimmed); err == nil {
				return parsed
			}
			if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return int(parsed)
			}
		}
	}
	return 0
}

// AsFloat64 coerces numeric values (including numeric strings) into float64.
func AsFloat64(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int32:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

// AsBool reads boolean flags that the backend sometimes sends as 0/1 or "true"/"false".
func AsBool(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case float64:
		return typed != 0
	case int:
		return typed != 0
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		return err == nil && parsed
	default:
		return false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// AsTime parses the timestamp formats emitted by the REST API. Zero is returned when
// the value is missing or unparsable.
func AsTime(value any) time.Time {
	raw := AsString(value)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// FirstString returns the first non-empty string found under the given keys.
func FirstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := AsString(raw[key]); value != "" {
			return value
		}
	}
	return ""
}

// FirstValue returns the first non-nil value found under the given keys. The backend
// mixes snake_case and camelCase flag names across collections.
func FirstValue(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := raw[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

// AsInterfaceSlice normalizes different collection types into a []any.
func AsInterfaceSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		items := make([]any, 0, len(typed))
		for _, entry := range typed {
			items = append(items, entry)
		}
		return items
	default:
		return nil
	}
}

// MapFromPayload attempts to unwrap common envelope structures (e.g. {"data": {...}})
// into a plain map for normalization routines.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	if typed, ok := value.(map[string]any); ok {
		if data, ok := typed["data"].(map[string]any); ok {
			return data
		}
		return typed
	}
	return nil
}

// CanonicalizeIDs walks a decoded JSON value and rewrites every "_id" key to "id" so
// callers only ever see one identifier field. An existing "id" wins over "_id".
func CanonicalizeIDs(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, nested := range typed {
			typed[key] = CanonicalizeIDs(nested)
		}
		if legacy, ok := typed["_id"]; ok {
			if _, exists := typed["id"]; !exists {
				typed["id"] = legacy
			}
			delete(typed, "_id")
		}
		return typed
	case []any:
		for index, nested := range typed {
			typed[index] = CanonicalizeIDs(nested)
		}
		return typed
	default:
		return value
	}
}
