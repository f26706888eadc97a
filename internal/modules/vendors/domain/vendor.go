package domain

import (
	"time"

	console "adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/normalization"
)

const Entity = "vendors"

const (
	FlagIsActive   = "is_active"
	FlagIsVerified = "is_verified"
)

const (
	StatActive   = "active"
	StatInactive = "inactive"
	StatVerified = "verified"
)

// Vendor is a seller account operating on the marketplace.
type Vendor struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StoreName  string    `json:"storeName,omitempty"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (v Vendor) EntityID() string { return v.ID }

func NormalizeVendor(raw map[string]any) (Vendor, bool) {
	id := normalization.AsIdentifier(raw["id"])
	if id == "" {
		return Vendor{}, false
	}
	return Vendor{
		ID:         id,
		Name:       normalization.FirstString(raw, "name", "ownerName"),
		StoreName:  normalization.FirstString(raw, "storeName", "store_name", "businessName"),
		Email:      normalization.AsString(raw["email"]),
		Phone:      normalization.FirstString(raw, "phone", "phoneNumber"),
		IsActive:   normalization.AsBool(normalization.FirstValue(raw, "is_active", "isActive")),
		IsVerified: normalization.AsBool(normalization.FirstValue(raw, "is_verified", "isVerified")),
		CreatedAt:  normalization.AsTime(raw["createdAt"]),
		UpdatedAt:  normalization.AsTime(raw["updatedAt"]),
	}, true
}

func Matches(v Vendor, filters console.Filters) bool {
	return console.MatchFlag(filters, FlagIsActive, v.IsActive) &&
		console.MatchFlag(filters, FlagIsVerified, v.IsVerified)
}

func SearchFields(v Vendor) []string {
	return []string{v.Name, v.StoreName, v.Email, v.Phone}
}

func Stats(all []Vendor) console.Stats {
	return console.CountStats(all, map[string]func(Vendor) bool{
		StatActive:   func(v Vendor) bool { return v.IsActive },
		StatInactive: func(v Vendor) bool { return !v.IsActive },
		StatVerified: func(v Vendor) bool { return v.IsVerified },
	})
}

var columns = []console.Column[Vendor]{
	{Header: "ID", Value: func(v Vendor) any { return v.ID }},
	{Header: "Name", Value: func(v Vendor) any { return v.Name }},
	{Header: "Store", Value: func(v Vendor) any { return v.StoreName }},
	{Header: "Email", Value: func(v Vendor) any { return v.Email }},
	{Header: "Phone", Value: func(v Vendor) any { return v.Phone }},
	{Header: "Active", Value: func(v Vendor) any { return v.IsActive }},
	{Header: "Verified", Value: func(v Vendor) any { return v.IsVerified }},
}

func Descriptor() console.Descriptor[Vendor] {
	return console.Descriptor[Vendor]{
		Entity:       Entity,
		Decode:       NormalizeVendor,
		Predicate:    Matches,
		SearchFields: SearchFields,
		Stats:        Stats,
		Columns:      columns,
		NewDraft:     func() console.Draft { return &Draft{} },
		Samples:      Samples,
	}
}
