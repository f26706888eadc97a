package domain

import "strings"

// OrderStatus is the fulfilment state of an order as exposed by the REST API.
type OrderStatus string

const (
	OrderStatusUnknown    OrderStatus = ""
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var allowedOrderStatuses = map[string]OrderStatus{
	string(OrderStatusPending):    OrderStatusPending,
	string(OrderStatusProcessing): OrderStatusProcessing,
	string(OrderStatusShipped):    OrderStatusShipped,
	string(OrderStatusDelivered):  OrderStatusDelivered,
	string(OrderStatusCancelled):  OrderStatusCancelled,
	"CANCELED":                    OrderStatusCancelled,
}

// NormalizeOrderStatus returns the canonical status. Unknown statuses are uppercased and
// kept so they are not lost.
func NormalizeOrderStatus(value any) OrderStatus {
	s, ok := value.(string)
	if !ok {
		return OrderStatusUnknown
	}
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return OrderStatusUnknown
	}
	if status, ok := allowedOrderStatuses[trimmed]; ok {
		return status
	}
	return OrderStatus(trimmed)
}

// Final reports whether no further transition is expected.
func (s OrderStatus) Final() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}
