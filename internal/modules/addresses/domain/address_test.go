package domain

import (
	"errors"
	"testing"

	console "adminConsole/internal/modules/console/domain"
)

func TestSamplesResolveNestedUser(t *testing.T) {
	t.Parallel()

	samples := Samples()
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	for _, address := range samples {
		if address.UserID != "usr-ana" {
			t.Fatalf("expected user id from nested or flat field, got %+v", address)
		}
	}
}

func TestAddressFiltersAndStats(t *testing.T) {
	t.Parallel()

	all := Samples()
	if stats := Stats(all); stats.Total() != 2 || stats[StatDefault] != 1 {
		t.Fatalf("unexpected stats %v", stats)
	}
	filters := console.Filters{Search: "0800"}.WithValue(FilterCity, "Barcelona")
	got := console.ApplyFilters(all, filters, Matches, SearchFields)
	if len(got) != 1 || got[0].Label != "Work" {
		t.Fatalf("unexpected result %+v", got)
	}
	if got := console.ApplyFilters(all, console.Filters{}.WithValue(FilterCity, "barcelona"), Matches, SearchFields); len(got) != 0 {
		t.Fatalf("expected city filter to be exact, got %+v", got)
	}
}

func TestAddressDraft(t *testing.T) {
	t.Parallel()

	var validation console.ValidationError
	if err := (&Draft{UserID: "u1", Line1: "Main St 1", City: "Lima", Country: "PER"}).Validate(); !errors.As(err, &validation) || validation.Field != "country" {
		t.Fatalf("expected country validation error, got %v", err)
	}
	draft := &Draft{UserID: "u1", Line1: "Main St 1", City: "Lima", Country: "pe"}
	if err := draft.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Payload()["country"] != "PE" {
		t.Fatalf("expected uppercase country, got %v", draft.Payload()["country"])
	}
}
