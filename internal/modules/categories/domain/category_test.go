package domain

import (
	"errors"
	"testing"

	console "adminConsole/internal/modules/console/domain"
)

func fixtures() []Category {
	return []Category{
		{ID: "c1", Name: "Analgesics", Description: "Pain relief", IsActive: true},
		{ID: "c2", Name: "Vitamins", IsActive: false},
		{ID: "c3", Name: "Legacy", IsActive: true, IsDeleted: true},
		{ID: "c4", Name: "Old devices", IsActive: false, IsDeleted: true},
	}
}

func ids(items []Category) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, item.ID)
	}
	return result
}

func TestMatchesFlagPriority(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		filters  console.Filters
		expected []string
	}{
		{name: "no flags hides deleted", filters: console.Filters{}, expected: []string{"c1", "c2"}},
		{name: "active only", filters: console.Filters{}.WithFlag(FlagIsActive, true), expected: []string{"c1"}},
		{name: "inactive only", filters: console.Filters{}.WithFlag(FlagIsActive, false), expected: []string{"c2"}},
		{name: "include deleted wins over active", filters: console.Filters{}.WithFlag(FlagIsActive, true).WithFlag(FlagIncludeDeleted, true), expected: []string{"c3", "c4"}},
		{name: "include deleted false is ignored", filters: console.Filters{}.WithFlag(FlagIncludeDeleted, false), expected: []string{"c1", "c2"}},
		{name: "search on description", filters: console.Filters{Search: "PAIN"}, expected: []string{"c1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(console.ApplyFilters(fixtures(), tc.filters, Matches, SearchFields))
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Fatalf("expected %v, got %v", tc.expected, got)
				}
			}
		})
	}
}

func TestApplyFiltersIsIdempotent(t *testing.T) {
	t.Parallel()

	filters := console.Filters{Search: "a"}.WithFlag(FlagIsActive, true)
	once := console.ApplyFilters(fixtures(), filters, Matches, SearchFields)
	twice := console.ApplyFilters(once, filters, Matches, SearchFields)
	if len(once) != len(twice) {
		t.Fatalf("expected idempotent filtering, got %v then %v", ids(once), ids(twice))
	}
}

func TestStatsCountsFullCollection(t *testing.T) {
	t.Parallel()

	stats := Stats(fixtures())
	expected := console.Stats{console.StatTotal: 4, StatActive: 1, StatInactive: 1, StatDeleted: 2}
	for key, value := range expected {
		if stats[key] != value {
			t.Fatalf("stat %s: expected %d, got %d", key, value, stats[key])
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()

	category, ok := NormalizeCategory(map[string]any{
		"id":        "c9",
		"name":      " Skin care ",
		"isActive":  true,
		"parent":    map[string]any{"id": "c1"},
		"createdAt": "2024-02-01T00:00:00Z",
	})
	if !ok {
		t.Fatal("expected category")
	}
	if category.Name != "Skin care" || !category.IsActive || category.ParentID != "c1" || category.CreatedAt.IsZero() {
		t.Fatalf("unexpected category %+v", category)
	}
	if _, ok := NormalizeCategory(map[string]any{"name": "missing id"}); ok {
		t.Fatal("expected records without id to be rejected")
	}
}

func TestActiveOptions(t *testing.T) {
	t.Parallel()

	options := ActiveOptions(fixtures())
	if len(options) != 1 || options[0].ID != "c1" {
		t.Fatalf("unexpected options %v", options)
	}
}

func TestDraftValidation(t *testing.T) {
	t.Parallel()

	err := (&Draft{Name: " x "}).Validate()
	var validation console.ValidationError
	if !errors.As(err, &validation) || validation.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}

	active := true
	draft := &Draft{Name: "Dermatology", IsActive: &active}
	if err := draft.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload := draft.Payload(); payload["is_active"] != true || payload["name"] != "Dermatology" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestSamplesUseCanonicalIDs(t *testing.T) {
	t.Parallel()

	samples := Samples()
	if len(samples) != 4 || samples[0].ID != "cat-analgesics" {
		t.Fatalf("unexpected samples %+v", samples)
	}
}
