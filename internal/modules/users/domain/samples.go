package domain

import "adminConsole/internal/shared/normalization"

var samples = []map[string]any{
	{"_id": "usr-admin", "name": "Root Admin", "email": "admin@example.com", "role": "ADMIN", "is_active": true},
	{"_id": "usr-ana", "name": "Ana Ruiz", "email": "ana@example.com", "role": "customer", "is_active": true},
	{"_id": "usr-spam", "name": "Spam Bot", "email": "spam@example.com", "is_active": false, "is_blocked": true},
}

// Samples returns the development users.
func Samples() []User {
	result := make([]User, 0, len(samples))
	for _, raw := range samples {
		copied := make(map[string]any, len(raw))
		for key, value := range raw {
			copied[key] = value
		}
		normalized, _ := normalization.CanonicalizeIDs(copied).(map[string]any)
		if user, ok := NormalizeUser(normalized); ok {
			result = append(result, user)
		}
	}
	return result
}
