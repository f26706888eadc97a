package domain

import "adminConsole/internal/shared/normalization"

var samples = []map[string]any{
	{"_id": "ven-north", "name": "Carla Vidal", "storeName": "Farmacia Norte", "email": "norte@example.com", "is_active": true, "is_verified": true},
	{"_id": "ven-south", "name": "Pedro Sanz", "storeName": "Farmacia Sur", "email": "sur@example.com", "is_active": true},
	{"_id": "ven-east", "name": "Irene Pons", "storeName": "Botica Este", "email": "este@example.com"},
}

// Samples returns the development vendors.
func Samples() []Vendor {
	result := make([]Vendor, 0, len(samples))
	for _, raw := range samples {
		copied := make(map[string]any, len(raw))
		for key, value := range raw {
			copied[key] = value
		}
		normalized, _ := normalization.CanonicalizeIDs(copied).(map[string]any)
		if vendor, ok := NormalizeVendor(normalized); ok {
			result = append(result, vendor)
		}
	}
	return result
}
