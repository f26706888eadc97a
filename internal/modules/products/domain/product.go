package domain

import (
	"strings"
	"time"

	console "adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/normalization"
)

const Entity = "products"

// DefaultLowStockThreshold applies when the backend does not send a per-product threshold.
const DefaultLowStockThreshold = 10

const (
	FilterCategory = "category"
	FilterStatus   = "status"
	FilterStock    = "stock"

	FlagIsFeatured           = "is_featured"
	FlagPrescriptionRequired = "prescription_required"
)

// Values accepted by FilterStatus and FilterStock.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	StockLow = "low"
	StockOut = "out"
	StockIn  = "in"
)

const (
	StatActive               = "active"
	StatLowStock             = "lowStock"
	StatOutOfStock           = "outOfStock"
	StatFeatured             = "featured"
	StatPrescriptionRequired = "prescriptionRequired"
)

type Product struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	Category             string    `json:"category,omitempty"`
	CategoryID           string    `json:"categoryId,omitempty"`
	Manufacturer         string    `json:"manufacturer,omitempty"`
	Price                float64   `json:"price"`
	Stock                int       `json:"stock"`
	LowStockThreshold    int       `json:"lowStockThreshold"`
	IsActive             bool      `json:"is_active"`
	IsFeatured           bool      `json:"is_featured"`
	PrescriptionRequired bool      `json:"prescription_required"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (p Product) EntityID() string { return p.ID }

// OutOfStock reports a stock of zero or less.
func (p Product) OutOfStock() bool { return p.Stock <= 0 }

// LowStock reports a positive stock at or below the product's threshold.
func (p Product) LowStock() bool {
	threshold := p.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return p.Stock > 0 && p.Stock <= threshold
}

// NormalizeProduct builds a Product from a normalized payload. The category may arrive as
// a populated object or as a plain name next to a categoryId.
func NormalizeProduct(raw map[string]any) (Product, bool) {
	id := normalization.AsIdentifier(raw["id"])
	if id == "" {
		return Product{}, false
	}
	product := Product{
		ID:                   id,
		Name:                 normalization.AsString(raw["name"]),
		Description:          normalization.AsString(raw["description"]),
		Manufacturer:         normalization.AsString(raw["manufacturer"]),
		Price:                normalization.AsFloat64(raw["price"]),
		Stock:                normalization.AsInt(normalization.FirstValue(raw, "stock", "quantity")),
		LowStockThreshold:    normalization.AsInt(normalization.FirstValue(raw, "lowStockThreshold", "low_stock_threshold")),
		IsActive:             normalization.AsBool(normalization.FirstValue(raw, "is_active", "isActive")),
		IsFeatured:           normalization.AsBool(normalization.FirstValue(raw, "is_featured", "isFeatured")),
		PrescriptionRequired: normalization.AsBool(normalization.FirstValue(raw, "prescription_required", "prescriptionRequired")),
		CreatedAt:            normalization.AsTime(raw["createdAt"]),
		UpdatedAt:            normalization.AsTime(raw["updatedAt"]),
	}
	if product.LowStockThreshold <= 0 {
		product.LowStockThreshold = DefaultLowStockThreshold
	}
	switch category := raw["category"].(type) {
	case map[string]any:
		product.CategoryID = normalization.AsIdentifier(category["id"])
		product.Category = normalization.AsString(category["name"])
	case string:
		product.Category = strings.TrimSpace(category)
	}
	if product.CategoryID == "" {
		product.CategoryID = normalization.AsIdentifier(normalization.FirstValue(raw, "categoryId", "category_id"))
	}
	return product, true
}

// Matches applies the product filters. The category filter accepts an id or a name.
func Matches(p Product, filters console.Filters) bool {
	if category := filters.Value(FilterCategory); category != "" {
		if !console.MatchValue(category, p.CategoryID) && !console.MatchValue(category, p.Category) {
			return false
		}
	}
	switch strings.ToLower(filters.Value(FilterStatus)) {
	case StatusActive:
		if !p.IsActive {
			return false
		}
	case StatusInactive:
		if p.IsActive {
			return false
		}
	}
	switch strings.ToLower(filters.Value(FilterStock)) {
	case StockLow:
		if !p.LowStock() {
			return false
		}
	case StockOut:
		if !p.OutOfStock() {
			return false
		}
	case StockIn:
		if p.OutOfStock() {
			return false
		}
	}
	return console.MatchFlag(filters, FlagIsFeatured, p.IsFeatured) &&
		console.MatchFlag(filters, FlagPrescriptionRequired, p.PrescriptionRequired)
}

func SearchFields(p Product) []string {
	return []string{p.Name, p.Category, p.Description, p.Manufacturer}
}

func Stats(all []Product) console.Stats {
	return console.CountStats(all, map[string]func(Product) bool{
		StatActive:               func(p Product) bool { return p.IsActive },
		StatLowStock:             Product.LowStock,
		StatOutOfStock:           Product.OutOfStock,
		StatFeatured:             func(p Product) bool { return p.IsFeatured },
		StatPrescriptionRequired: func(p Product) bool { return p.PrescriptionRequired },
	})
}

var columns = []console.Column[Product]{
	{Header: "ID", Value: func(p Product) any { return p.ID }},
	{Header: "Name", Value: func(p Product) any { return p.Name }},
	{Header: "Category", Value: func(p Product) any { return p.Category }},
	{Header: "Manufacturer", Value: func(p Product) any { return p.Manufacturer }},
	{Header: "Price", Value: func(p Product) any { return p.Price }},
	{Header: "Stock", Value: func(p Product) any { return p.Stock }},
	{Header: "Active", Value: func(p Product) any { return p.IsActive }},
	{Header: "Featured", Value: func(p Product) any { return p.IsFeatured }},
	{Header: "Prescription", Value: func(p Product) any { return p.PrescriptionRequired }},
	{Header: "Updated", Value: func(p Product) any { return p.UpdatedAt }},
}

func Descriptor() console.Descriptor[Product] {
	return console.Descriptor[Product]{
		Entity:       Entity,
		Decode:       NormalizeProduct,
		Predicate:    Matches,
		SearchFields: SearchFields,
		Stats:        Stats,
		Columns:      columns,
		NewDraft:     func() console.Draft { return &Draft{} },
		Samples:      Samples,
	}
}
