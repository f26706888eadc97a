package domain

import "adminConsole/internal/shared/normalization"

// Development seed data. The records use "_id" like the mock fixtures the console was
// first built against.
var samples = []map[string]any{
	{"_id": "cat-analgesics", "name": "Analgesics", "description": "Pain relief", "is_active": true, "createdAt": "2024-01-05T09:00:00Z"},
	{"_id": "cat-vitamins", "name": "Vitamins", "description": "Daily supplements", "is_active": true, "createdAt": "2024-01-06T09:00:00Z"},
	{"_id": "cat-devices", "name": "Medical devices", "description": "Thermometers and monitors", "is_active": false, "createdAt": "2024-01-07T09:00:00Z"},
	{"_id": "cat-legacy", "name": "Legacy", "description": "Retired catalogue", "is_active": false, "is_deleted": true, "createdAt": "2023-11-20T09:00:00Z"},
}

// Samples returns the development categories.
func Samples() []Category {
	result := make([]Category, 0, len(samples))
	for _, raw := range samples {
		copied := make(map[string]any, len(raw))
		for key, value := range raw {
			copied[key] = value
		}
		normalized, _ := normalization.CanonicalizeIDs(copied).(map[string]any)
		if category, ok := NormalizeCategory(normalized); ok {
			result = append(result, category)
		}
	}
	return result
}
