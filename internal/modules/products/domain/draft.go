package domain

import (
	"math"
	"strings"

	console "adminConsole/internal/modules/console/domain"
)

// Draft is the product create/update form.
type Draft struct {
	Name                 string  `json:"name" validate:"required,min=2,max=120"`
	Description          string  `json:"description" validate:"max=2000"`
	CategoryID           string  `json:"categoryId" validate:"required"`
	Manufacturer         string  `json:"manufacturer" validate:"max=120"`
	Price                float64 `json:"price" validate:"gt=0"`
	Stock                int     `json:"stock" validate:"gte=0"`
	LowStockThreshold    int     `json:"lowStockThreshold" validate:"gte=0"`
	IsActive             bool    `json:"is_active"`
	IsFeatured           bool    `json:"is_featured"`
	PrescriptionRequired bool    `json:"prescription_required"`
}

func (d *Draft) normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.CategoryID = strings.TrimSpace(d.CategoryID)
	d.Manufacturer = strings.TrimSpace(d.Manufacturer)
}

func (d *Draft) Validate() error {
	d.normalize()
	return console.CheckDraft(d, d.priceHasCents)
}

// priceHasCents rejects prices with more than two decimals.
func (d *Draft) priceHasCents() error {
	cents := d.Price * 100
	if math.Abs(cents-math.Round(cents)) > 1e-6 {
		return console.ValidationError{Field: "price", Msg: "must have at most 2 decimals"}
	}
	return nil
}

func (d *Draft) Payload() map[string]any {
	d.normalize()
	threshold := d.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return map[string]any{
		"name":                  d.Name,
		"description":           d.Description,
		"categoryId":            d.CategoryID,
		"manufacturer":          d.Manufacturer,
		"price":                 d.Price,
		"stock":                 d.Stock,
		"lowStockThreshold":     threshold,
		"is_active":             d.IsActive,
		"is_featured":           d.IsFeatured,
		"prescription_required": d.PrescriptionRequired,
	}
}
