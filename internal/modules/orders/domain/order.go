package domain

import (
	"strings"
	"time"

	console "adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/normalization"
)

const Entity = "orders"

const (
	FilterStatus        = "status"
	FilterPaymentStatus = "payment_status"
	FilterVendor        = "vendor"
)

const PaymentStatusPaid = "PAID"

const (
	StatPending    = "pending"
	StatProcessing = "processing"
	StatShipped    = "shipped"
	StatDelivered  = "delivered"
	StatCancelled  = "cancelled"
	StatPaid       = "paid"
)

type Order struct {
	ID            string      `json:"id"`
	Number        string      `json:"number"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	VendorID      string      `json:"vendorId,omitempty"`
	Status        OrderStatus `json:"status"`
	PaymentStatus string      `json:"paymentStatus,omitempty"`
	Total         float64     `json:"total"`
	ItemsCount    int         `json:"itemsCount"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (o Order) EntityID() string { return o.ID }

func NormalizeOrder(raw map[string]any) (Order, bool) {
	id := normalization.AsIdentifier(raw["id"])
	if id == "" {
		return Order{}, false
	}
	order := Order{
		ID:            id,
		Number:        normalization.FirstString(raw, "orderNumber", "number"),
		CustomerName:  normalization.FirstString(raw, "customerName", "customer_name"),
		CustomerEmail: normalization.FirstString(raw, "customerEmail", "customer_email"),
		VendorID:      normalization.AsIdentifier(normalization.FirstValue(raw, "vendorId", "vendor_id")),
		Status:        NormalizeOrderStatus(normalization.FirstValue(raw, "status", "orderStatus")),
		PaymentStatus: strings.ToUpper(normalization.FirstString(raw, "paymentStatus", "payment_status")),
		Total:         normalization.AsFloat64(normalization.FirstValue(raw, "total", "totalAmount")),
		CreatedAt:     normalization.AsTime(raw["createdAt"]),
		UpdatedAt:     normalization.AsTime(raw["updatedAt"]),
	}
	if order.Number == "" {
		order.Number = id
	}
	if customer, ok := raw["customer"].(map[string]any); ok {
		if order.CustomerName == "" {
			order.CustomerName = normalization.AsString(customer["name"])
		}
		if order.CustomerEmail == "" {
			order.CustomerEmail = normalization.AsString(customer["email"])
		}
	}
	if items := normalization.AsInterfaceSlice(raw["items"]); items != nil {
		order.ItemsCount = len(items)
	} else {
		order.ItemsCount = normalization.AsInt(raw["itemsCount"])
	}
	return order, true
}

func Matches(o Order, filters console.Filters) bool {
	return console.MatchValue(string(NormalizeOrderStatus(filters.Value(FilterStatus))), string(o.Status)) &&
		console.MatchValue(strings.ToUpper(filters.Value(FilterPaymentStatus)), o.PaymentStatus) &&
		console.MatchValue(filters.Value(FilterVendor), o.VendorID)
}

func SearchFields(o Order) []string {
	return []string{o.Number, o.CustomerName, o.CustomerEmail}
}

func Stats(all []Order) console.Stats {
	return console.CountStats(all, map[string]func(Order) bool{
		StatPending:    func(o Order) bool { return o.Status == OrderStatusPending },
		StatProcessing: func(o Order) bool { return o.Status == OrderStatusProcessing },
		StatShipped:    func(o Order) bool { return o.Status == OrderStatusShipped },
		StatDelivered:  func(o Order) bool { return o.Status == OrderStatusDelivered },
		StatCancelled:  func(o Order) bool { return o.Status == OrderStatusCancelled },
		StatPaid:       func(o Order) bool { return o.PaymentStatus == PaymentStatusPaid },
	})
}

var columns = []console.Column[Order]{
	{Header: "ID", Value: func(o Order) any { return o.ID }},
	{Header: "Number", Value: func(o Order) any { return o.Number }},
	{Header: "Customer", Value: func(o Order) any { return o.CustomerName }},
	{Header: "Status", Value: func(o Order) any { return string(o.Status) }},
	{Header: "Payment", Value: func(o Order) any { return o.PaymentStatus }},
	{Header: "Items", Value: func(o Order) any { return o.ItemsCount }},
	{Header: "Total", Value: func(o Order) any { return o.Total }},
	{Header: "Created", Value: func(o Order) any { return o.CreatedAt }},
}

func Descriptor() console.Descriptor[Order] {
	return console.Descriptor[Order]{
		Entity:       Entity,
		Decode:       NormalizeOrder,
		Predicate:    Matches,
		SearchFields: SearchFields,
		Stats:        Stats,
		Columns:      columns,
		NewDraft:     func() console.Draft { return &StatusDraft{} },
		Prefill:      prefillStatus,
		Samples:      Samples,
	}
}

func prefillStatus(draft console.Draft, current Order) {
	if form, ok := draft.(*StatusDraft); ok {
		form.Current = current.Status
	}
}
