package normalization

import "testing"

func TestNormalizeEntity(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"category":      "categories",
		" Categories ":  "categories",
		"product":       "products",
		"ORDER":         "orders",
		"seller":        "vendors",
		"customer":      "users",
		"USER_ADDRESS":  "addresses",
		"custom-entity": "custom-entity",
		"custom_entity": "custom-entity",
	}

	for input, expected := range cases {
		if got := NormalizeEntity(input); got != expected {
			t.Fatalf("NormalizeEntity(%q) expected %q got %q", input, expected, got)
		}
	}
}

func TestIsValidEntity(t *testing.T) {
	if !IsValidEntity("Vendor") {
		t.Fatal("expected vendor to be valid")
	}
	if IsValidEntity("restaurants") {
		t.Fatal("expected restaurants to be rejected")
	}
	if len(GetAllValidEntities()) != 6 {
		t.Fatalf("unexpected entity count: %d", len(GetAllValidEntities()))
	}
}
