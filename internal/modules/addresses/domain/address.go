package domain

import (
	"time"

	console "adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/normalization"
)

const Entity = "addresses"

const (
	FilterUser    = "user"
	FilterCity    = "city"
	FlagIsDefault = "is_default"
)

const StatDefault = "default"

// Address is a shipping address saved by a user.
type Address struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Label      string    `json:"label,omitempty"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2,omitempty"`
	City       string    `json:"city"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postalCode,omitempty"`
	Country    string    `json:"country,omitempty"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (a Address) EntityID() string { return a.ID }

func NormalizeAddress(raw map[string]any) (Address, bool) {
	id := normalization.AsIdentifier(raw["id"])
	if id == "" {
		return Address{}, false
	}
	address := Address{
		ID:         id,
		UserID:     normalization.AsIdentifier(normalization.FirstValue(raw, "userId", "user_id")),
		Label:      normalization.FirstString(raw, "label", "name"),
		Line1:      normalization.FirstString(raw, "line1", "addressLine1", "street"),
		Line2:      normalization.FirstString(raw, "line2", "addressLine2"),
		City:       normalization.AsString(raw["city"]),
		State:      normalization.FirstString(raw, "state", "province"),
		PostalCode: normalization.FirstString(raw, "postalCode", "postal_code", "zip"),
		Country:    normalization.AsString(raw["country"]),
		IsDefault:  normalization.AsBool(normalization.FirstValue(raw, "is_default", "isDefault")),
		CreatedAt:  normalization.AsTime(raw["createdAt"]),
		UpdatedAt:  normalization.AsTime(raw["updatedAt"]),
	}
	if user, ok := raw["user"].(map[string]any); ok && address.UserID == "" {
		address.UserID = normalization.AsIdentifier(user["id"])
	}
	return address, true
}

func Matches(a Address, filters console.Filters) bool {
	return console.MatchValue(filters.Value(FilterUser), a.UserID) &&
		console.MatchValue(filters.Value(FilterCity), a.City) &&
		console.MatchFlag(filters, FlagIsDefault, a.IsDefault)
}

func SearchFields(a Address) []string {
	return []string{a.Label, a.Line1, a.City, a.PostalCode}
}

func Stats(all []Address) console.Stats {
	return console.CountStats(all, map[string]func(Address) bool{
		StatDefault: func(a Address) bool { return a.IsDefault },
	})
}

var columns = []console.Column[Address]{
	{Header: "ID", Value: func(a Address) any { return a.ID }},
	{Header: "User", Value: func(a Address) any { return a.UserID }},
	{Header: "Label", Value: func(a Address) any { return a.Label }},
	{Header: "Line 1", Value: func(a Address) any { return a.Line1 }},
	{Header: "City", Value: func(a Address) any { return a.City }},
	{Header: "Postal code", Value: func(a Address) any { return a.PostalCode }},
	{Header: "Default", Value: func(a Address) any { return a.IsDefault }},
}

func Descriptor() console.Descriptor[Address] {
	return console.Descriptor[Address]{
		Entity:       Entity,
		Decode:       NormalizeAddress,
		Predicate:    Matches,
		SearchFields: SearchFields,
		Stats:        Stats,
		Columns:      columns,
		NewDraft:     func() console.Draft { return &Draft{} },
		Samples:      Samples,
	}
}
