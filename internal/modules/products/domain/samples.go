package domain

import "adminConsole/internal/shared/normalization"

var samples = []map[string]any{
	{"_id": "prod-ibuprofen", "name": "Ibuprofen 400mg", "category": map[string]any{"_id": "cat-analgesics", "name": "Analgesics"}, "manufacturer": "Acme Pharma", "price": 4.5, "stock": 120, "is_active": true, "is_featured": true},
	{"_id": "prod-codeine", "name": "Codeine syrup", "category": map[string]any{"_id": "cat-analgesics", "name": "Analgesics"}, "manufacturer": "Acme Pharma", "price": 12.9, "stock": 6, "is_active": true, "prescription_required": true},
	{"_id": "prod-vitc", "name": "Vitamin C 1g", "category": map[string]any{"_id": "cat-vitamins", "name": "Vitamins"}, "manufacturer": "Nutrilab", "price": 7.25, "stock": 0, "is_active": true},
	{"_id": "prod-thermo", "name": "Digital thermometer", "category": map[string]any{"_id": "cat-devices", "name": "Medical devices"}, "manufacturer": "Medix", "price": 19.99, "stock": 35, "is_active": false},
}

// Samples returns the development products.
func Samples() []Product {
	result := make([]Product, 0, len(samples))
	for _, raw := range samples {
		normalized, _ := normalization.CanonicalizeIDs(cloneMap(raw)).(map[string]any)
		if product, ok := NormalizeProduct(normalized); ok {
			result = append(result, product)
		}
	}
	return result
}

func cloneMap(raw map[string]any) map[string]any {
	copied := make(map[string]any, len(raw))
	for key, value := range raw {
		if nested, ok := value.(map[string]any); ok {
			value = cloneMap(nested)
		}
		copied[key] = value
	}
	return copied
}
