package domain

import "adminConsole/internal/shared/normalization"

var samples = []map[string]any{
	{"_id": "ord-1001", "orderNumber": "1001", "customerName": "Ana Ruiz", "vendorId": "ven-north", "status": "pending", "paymentStatus": "unpaid", "total": 24.5, "itemsCount": 2, "createdAt": "2024-03-01T10:00:00Z"},
	{"_id": "ord-1002", "orderNumber": "1002", "customerName": "Luis Mora", "vendorId": "ven-north", "status": "shipped", "paymentStatus": "paid", "total": 12.9, "itemsCount": 1, "createdAt": "2024-03-02T11:30:00Z"},
	{"_id": "ord-1003", "orderNumber": "1003", "customerName": "Marta Gil", "vendorId": "ven-south", "status": "delivered", "paymentStatus": "paid", "total": 61.0, "itemsCount": 4, "createdAt": "2024-03-03T08:15:00Z"},
}

// Samples returns the development orders.
func Samples() []Order {
	result := make([]Order, 0, len(samples))
	for _, raw := range samples {
		copied := make(map[string]any, len(raw))
		for key, value := range raw {
			copied[key] = value
		}
		normalized, _ := normalization.CanonicalizeIDs(copied).(map[string]any)
		if order, ok := NormalizeOrder(normalized); ok {
			result = append(result, order)
		}
	}
	return result
}
