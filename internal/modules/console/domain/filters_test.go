package domain

import "testing"

func TestApplyFiltersEmptyReturnsAll(t *testing.T) {
	t.Parallel()

	items := widgets(5)
	got := ApplyFilters(items, Filters{}, nil, func(w widget) []string { return []string{w.Name} })
	if len(got) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(got))
	}
}

func TestApplyFiltersSearchIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	items := []widget{{ID: "1", Name: "Laptop Stand"}, {ID: "2", Name: "Desk"}}
	got := ApplyFilters(items, Filters{Search: "  LAPTOP "}, nil, func(w widget) []string { return []string{w.Name} })
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFiltersBuilders(t *testing.T) {
	t.Parallel()

	f := Filters{}.WithValue("Status", " pending ").WithFlag("IS_ACTIVE", false)
	if f.Value("status") != "pending" {
		t.Fatalf("expected normalized value, got %q", f.Value("status"))
	}
	if value, set := f.Flag("is_active"); !set || value {
		t.Fatalf("expected is_active=false set, got %v %v", value, set)
	}
	f = f.WithValue("status", "").WithoutFlag("is_active")
	if !f.IsZero() {
		t.Fatalf("expected zero filters, got %+v", f)
	}
}

func TestMatchHelpers(t *testing.T) {
	t.Parallel()

	if !MatchValue("", "anything") || !MatchValue(" pending ", "pending") || MatchValue("Delivered", "delivered") || MatchValue("pending", "shipped") {
		t.Fatal("unexpected MatchValue behavior")
	}
	f := Filters{}.WithFlag("is_active", true)
	if !MatchFlag(f, "is_active", true) || MatchFlag(f, "is_active", false) || !MatchFlag(f, "other", false) {
		t.Fatal("unexpected MatchFlag behavior")
	}
	if !MatchSearch("", "x") || MatchSearch("x") {
		t.Fatal("unexpected MatchSearch behavior")
	}
}
