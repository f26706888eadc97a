package domain

import (
	"errors"
	"testing"

	console "adminConsole/internal/modules/console/domain"
)

func TestVendorStatsAndFilters(t *testing.T) {
	t.Parallel()

	all := Samples()
	stats := Stats(all)
	if stats.Total() != 3 || stats[StatActive] != 2 || stats[StatInactive] != 1 || stats[StatVerified] != 1 {
		t.Fatalf("unexpected stats %v", stats)
	}

	unverified := console.ApplyFilters(all, console.Filters{}.WithFlag(FlagIsActive, true).WithFlag(FlagIsVerified, false), Matches, SearchFields)
	if len(unverified) != 1 || unverified[0].ID != "ven-south" {
		t.Fatalf("unexpected vendors %+v", unverified)
	}

	byStore := console.ApplyFilters(all, console.Filters{Search: "botica"}, Matches, SearchFields)
	if len(byStore) != 1 || byStore[0].ID != "ven-east" {
		t.Fatalf("unexpected search result %+v", byStore)
	}
}

func TestVendorDraft(t *testing.T) {
	t.Parallel()

	var validation console.ValidationError
	if err := (&Draft{Name: "Farmacia", Email: "not-an-email"}).Validate(); !errors.As(err, &validation) || validation.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}

	draft := &Draft{Name: " Farmacia Oeste ", Email: " OESTE@Example.com "}
	if err := draft.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload := draft.Payload()
	if payload["email"] != "oeste@example.com" || payload["name"] != "Farmacia Oeste" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, ok := payload["phone"]; ok {
		t.Fatal("expected empty phone to be omitted")
	}
}
