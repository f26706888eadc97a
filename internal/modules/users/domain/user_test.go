package domain

import (
	"errors"
	"testing"

	console "adminConsole/internal/modules/console/domain"
)

func TestNormalizeUserRole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  map[string]any
		role string
	}{
		{name: "explicit role", raw: map[string]any{"id": "u1", "role": "ADMIN"}, role: RoleAdmin},
		{name: "roles array", raw: map[string]any{"id": "u1", "roles": []any{"Vendor"}}, role: RoleVendor},
		{name: "default", raw: map[string]any{"id": "u1"}, role: RoleCustomer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, ok := NormalizeUser(tc.raw)
			if !ok || user.Role != tc.role {
				t.Fatalf("expected role %q, got %+v", tc.role, user)
			}
		})
	}
}

func TestUserStatsAndFilters(t *testing.T) {
	t.Parallel()

	all := Samples()
	stats := Stats(all)
	if stats.Total() != 3 || stats[StatActive] != 2 || stats[StatBlocked] != 1 || stats[StatAdmins] != 1 || stats[StatInactive] != 0 {
		t.Fatalf("unexpected stats %v", stats)
	}

	blocked := console.ApplyFilters(all, console.Filters{}.WithFlag(FlagIsBlocked, true), Matches, SearchFields)
	if len(blocked) != 1 || blocked[0].ID != "usr-spam" {
		t.Fatalf("unexpected blocked users %+v", blocked)
	}
	admins := console.ApplyFilters(all, console.Filters{}.WithValue(FilterRole, "Admin"), Matches, SearchFields)
	if len(admins) != 1 {
		t.Fatalf("expected one admin, got %+v", admins)
	}
}

func TestUserDraftRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	var validation console.ValidationError
	err := (&Draft{Name: "Ana", Email: "ana@example.com", Role: "owner"}).Validate()
	if !errors.As(err, &validation) || validation.Field != "role" {
		t.Fatalf("expected role validation error, got %v", err)
	}
	if err := (&Draft{Name: "Ana", Email: "ana@example.com", Role: " Vendor "}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
