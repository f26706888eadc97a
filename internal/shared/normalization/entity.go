package normalization

import "strings"

// entityAliases maps the entity names used by routes, kafka topics and the REST API
// to their canonical console form.
var entityAliases = map[string]string{
	"":        "",
	"-":       "",
	"default": "",

	"category":   "categories",
	"categories": "categories",

	"product":  "products",
	"products": "products",
	"item":     "products",
	"items":    "products",
	"medicine": "products",

	"order":  "orders",
	"orders": "orders",

	"vendor":  "vendors",
	"vendors": "vendors",
	"seller":  "vendors",
	"sellers": "vendors",
	"store":   "vendors",
	"stores":  "vendors",

	"user":       "users",
	"users":      "users",
	"customer":   "users",
	"customers":  "users",
	"auth-user":  "users",
	"auth-users": "users",

	"address":            "addresses",
	"addresses":          "addresses",
	"user-address":       "addresses",
	"user-addresses":     "addresses",
	"shipping-address":   "addresses",
	"shipping-addresses": "addresses",
}

var validEntities = map[string]bool{
	"categories": true,
	"products":   true,
	"orders":     true,
	"vendors":    true,
	"users":      true,
	"addresses":  true,
}

// NormalizeEntity converts various entity name formats to their canonical form.
// Singular/plural forms and "-"/"_" separators are accepted.
//
// Example:
//
//	NormalizeEntity("Category") => "categories"
//	NormalizeEntity("USER_ADDRESS") => "addresses"
func NormalizeEntity(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	normalized := strings.ReplaceAll(trimmed, "_", "-")

	if canonical, found := entityAliases[normalized]; found {
		return canonical
	}
	return normalized
}

// IsValidEntity checks if the given entity name is a known console entity.
func IsValidEntity(raw string) bool {
	return validEntities[NormalizeEntity(raw)]
}

// GetAllValidEntities returns a list of all valid canonical entity names.
func GetAllValidEntities() []string {
	return []string{
		"categories",
		"products",
		"orders",
		"vendors",
		"users",
		"addresses",
	}
}
