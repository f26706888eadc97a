package domain

import (
	"strings"
	"time"

	console "adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/normalization"
)

// Entity is the canonical name of the category collection.
const Entity = "categories"

const (
	FlagIncludeDeleted = "include_deleted"
	FlagIsActive       = "is_active"
	FilterParent       = "parent"
)

const (
	StatActive   = "active"
	StatInactive = "inactive"
	StatDeleted  = "deleted"
)

// Category is a product category managed from the console. Deleted categories are soft
// deleted by the backend and stay in the collection with IsDeleted set.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ParentID    string    `json:"parentId,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c Category) EntityID() string { return c.ID }

// NormalizeCategory builds a Category from a normalized payload.
func NormalizeCategory(raw map[string]any) (Category, bool) {
	id := normalization.AsIdentifier(raw["id"])
	if id == "" {
		return Category{}, false
	}
	category := Category{
		ID:          id,
		Name:        normalization.AsString(raw["name"]),
		Description: normalization.AsString(raw["description"]),
		ParentID:    normalization.AsIdentifier(normalization.FirstValue(raw, "parentId", "parent_id", "parent")),
		IsActive:    normalization.AsBool(normalization.FirstValue(raw, "is_active", "isActive")),
		IsDeleted:   normalization.AsBool(normalization.FirstValue(raw, "is_deleted", "isDeleted")),
		CreatedAt:   normalization.AsTime(raw["createdAt"]),
		UpdatedAt:   normalization.AsTime(raw["updatedAt"]),
	}
	if parent, ok := raw["parent"].(map[string]any); ok && category.ParentID == "" {
		category.ParentID = normalization.AsIdentifier(parent["id"])
	}
	return category, true
}

// Matches applies the category filters. include_deleted takes priority over is_active:
// when set it shows only soft-deleted categories; otherwise is_active narrows the
// non-deleted categories; with neither flag every non-deleted category passes.
func Matches(c Category, filters console.Filters) bool {
	if !console.MatchValue(filters.Value(FilterParent), c.ParentID) {
		return false
	}
	if includeDeleted, set := filters.Flag(FlagIncludeDeleted); set && includeDeleted {
		return c.IsDeleted
	}
	if c.IsDeleted {
		return false
	}
	return console.MatchFlag(filters, FlagIsActive, c.IsActive)
}

func SearchFields(c Category) []string {
	return []string{c.Name, c.Description}
}

// Stats counts the complete category collection.
func Stats(all []Category) console.Stats {
	return console.CountStats(all, map[string]func(Category) bool{
		StatActive:   func(c Category) bool { return c.IsActive && !c.IsDeleted },
		StatInactive: func(c Category) bool { return !c.IsActive && !c.IsDeleted },
		StatDeleted:  func(c Category) bool { return c.IsDeleted },
	})
}

// ActiveOptions lists the categories a product may be assigned to.
func ActiveOptions(all []Category) []console.Option {
	options := make([]console.Option, 0, len(all))
	for _, category := range all {
		if !category.IsActive || category.IsDeleted {
			continue
		}
		label := strings.TrimSpace(category.Name)
		if label == "" {
			label = category.ID
		}
		options = append(options, console.Option{ID: category.ID, Label: label})
	}
	return options
}

var columns = []console.Column[Category]{
	{Header: "ID", Value: func(c Category) any { return c.ID }},
	{Header: "Name", Value: func(c Category) any { return c.Name }},
	{Header: "Description", Value: func(c Category) any { return c.Description }},
	{Header: "Parent", Value: func(c Category) any { return c.ParentID }},
	{Header: "Active", Value: func(c Category) any { return c.IsActive }},
	{Header: "Deleted", Value: func(c Category) any { return c.IsDeleted }},
	{Header: "Created", Value: func(c Category) any { return c.CreatedAt }},
}

// Descriptor configures the generic console container for categories.
func Descriptor() console.Descriptor[Category] {
	return console.Descriptor[Category]{
		Entity:       Entity,
		Decode:       NormalizeCategory,
		Predicate:    Matches,
		SearchFields: SearchFields,
		Stats:        Stats,
		Columns:      columns,
		NewDraft:     func() console.Draft { return &Draft{} },
		Samples:      Samples,
	}
}
