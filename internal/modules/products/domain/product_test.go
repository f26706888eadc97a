package domain

import (
	"errors"
	"testing"

	console "adminConsole/internal/modules/console/domain"
)

func fixtures() []Product {
	return []Product{
		{ID: "p1", Name: "Ibuprofen", Category: "Analgesics", CategoryID: "c1", Manufacturer: "Acme", Stock: 100, IsActive: true, IsFeatured: true},
		{ID: "p2", Name: "Codeine", Category: "Analgesics", CategoryID: "c1", Stock: 5, LowStockThreshold: 10, IsActive: true, PrescriptionRequired: true},
		{ID: "p3", Name: "Vitamin C", Category: "Vitamins", CategoryID: "c2", Stock: 0, IsActive: true},
		{ID: "p4", Name: "Thermometer", Category: "Devices", CategoryID: "c3", Stock: 10, LowStockThreshold: 10, IsActive: false},
	}
}

func TestStockClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		stock, threshold int
		low, out         bool
	}{
		{stock: 0, threshold: 10, low: false, out: true},
		{stock: -2, threshold: 10, low: false, out: true},
		{stock: 1, threshold: 10, low: true, out: false},
		{stock: 10, threshold: 10, low: true, out: false},
		{stock: 11, threshold: 10, low: false, out: false},
		{stock: 8, threshold: 0, low: true, out: false},
	}
	for _, tc := range cases {
		p := Product{Stock: tc.stock, LowStockThreshold: tc.threshold}
		if p.LowStock() != tc.low || p.OutOfStock() != tc.out {
			t.Fatalf("stock %d threshold %d: low=%v out=%v", tc.stock, tc.threshold, p.LowStock(), p.OutOfStock())
		}
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	stats := Stats(fixtures())
	expected := console.Stats{
		console.StatTotal:        4,
		StatActive:               3,
		StatLowStock:             2,
		StatOutOfStock:           1,
		StatFeatured:             1,
		StatPrescriptionRequired: 1,
	}
	for key, value := range expected {
		if stats[key] != value {
			t.Fatalf("stat %s: expected %d, got %d", key, value, stats[key])
		}
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		filters console.Filters
		count   int
	}{
		{name: "category by id", filters: console.Filters{}.WithValue(FilterCategory, "c1"), count: 2},
		{name: "category by name", filters: console.Filters{}.WithValue(FilterCategory, "Vitamins"), count: 1},
		{name: "category name is exact", filters: console.Filters{}.WithValue(FilterCategory, "vitamins"), count: 0},
		{name: "inactive", filters: console.Filters{}.WithValue(FilterStatus, StatusInactive), count: 1},
		{name: "low stock", filters: console.Filters{}.WithValue(FilterStock, StockLow), count: 2},
		{name: "out of stock", filters: console.Filters{}.WithValue(FilterStock, StockOut), count: 1},
		{name: "featured flag", filters: console.Filters{}.WithFlag(FlagIsFeatured, true), count: 1},
		{name: "search manufacturer", filters: console.Filters{Search: "acme"}, count: 1},
		{name: "search category and status", filters: console.Filters{Search: "analgesics"}.WithFlag(FlagPrescriptionRequired, false), count: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := console.ApplyFilters(fixtures(), tc.filters, Matches, SearchFields)
			if len(got) != tc.count {
				t.Fatalf("expected %d products, got %d", tc.count, len(got))
			}
		})
	}
}

func TestNormalizeProductCategoryShapes(t *testing.T) {
	t.Parallel()

	populated, ok := NormalizeProduct(map[string]any{"id": "p1", "category": map[string]any{"id": "c1", "name": "Analgesics"}, "stock": "7"})
	if !ok || populated.CategoryID != "c1" || populated.Category != "Analgesics" || populated.Stock != 7 {
		t.Fatalf("unexpected product %+v", populated)
	}
	if populated.LowStockThreshold != DefaultLowStockThreshold {
		t.Fatalf("expected default threshold, got %d", populated.LowStockThreshold)
	}

	flat, ok := NormalizeProduct(map[string]any{"id": float64(42), "category": "Vitamins", "category_id": "c2"})
	if !ok || flat.ID != "42" || flat.CategoryID != "c2" || flat.Category != "Vitamins" {
		t.Fatalf("unexpected product %+v", flat)
	}
}

func TestDraftValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		draft Draft
		field string
	}{
		{name: "missing name", draft: Draft{CategoryID: "c1", Price: 1}, field: "name"},
		{name: "zero price", draft: Draft{Name: "Gauze", CategoryID: "c1"}, field: "price"},
		{name: "negative stock", draft: Draft{Name: "Gauze", CategoryID: "c1", Price: 1, Stock: -1}, field: "stock"},
		{name: "missing category", draft: Draft{Name: "Gauze", Price: 1}, field: "categoryId"},
		{name: "fractional cents", draft: Draft{Name: "Gauze", CategoryID: "c1", Price: 1.005}, field: "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := tc.draft
			var validation console.ValidationError
			if err := draft.Validate(); !errors.As(err, &validation) || validation.Field != tc.field {
				t.Fatalf("expected %s validation error, got %v", tc.field, err)
			}
		})
	}

	valid := Draft{Name: "Gauze", CategoryID: "c1", Price: 2.5, Stock: 3}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload := valid.Payload(); payload["lowStockThreshold"] != DefaultLowStockThreshold {
		t.Fatalf("expected default threshold in payload, got %v", payload["lowStockThreshold"])
	}
}

func TestSamples(t *testing.T) {
	t.Parallel()

	samples := Samples()
	if len(samples) != 4 || samples[0].CategoryID != "cat-analgesics" {
		t.Fatalf("unexpected samples %+v", samples)
	}
}
