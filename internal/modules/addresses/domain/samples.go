package domain

import "adminConsole/internal/shared/normalization"

var samples = []map[string]any{
	{"_id": "adr-ana-home", "user": map[string]any{"_id": "usr-ana"}, "label": "Home", "line1": "Calle Mayor 1", "city": "Madrid", "postalCode": "28013", "country": "ES", "is_default": true},
	{"_id": "adr-ana-work", "userId": "usr-ana", "label": "Work", "line1": "Paseo de Gracia 20", "city": "Barcelona", "postalCode": "08007", "country": "ES"},
}

// Samples returns the development addresses.
func Samples() []Address {
	result := make([]Address, 0, len(samples))
	for _, raw := range samples {
		copied := make(map[string]any, len(raw))
		for key, value := range raw {
			if nested, ok := value.(map[string]any); ok {
				inner := make(map[string]any, len(nested))
				for k, v := range nested {
					inner[k] = v
				}
				value = inner
			}
			copied[key] = value
		}
		normalized, _ := normalization.CanonicalizeIDs(copied).(map[string]any)
		if address, ok := NormalizeAddress(normalized); ok {
			result = append(result, address)
		}
	}
	return result
}
