package domain

import (
	"strings"
	"time"

	console "adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/normalization"
)

const Entity = "users"

const (
	RoleAdmin    = "admin"
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

const (
	FilterRole    = "role"
	FlagIsActive  = "is_active"
	FlagIsBlocked = "is_blocked"
)

const (
	StatActive   = "active"
	StatInactive = "inactive"
	StatBlocked  = "blocked"
	StatAdmins   = "admins"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	IsBlocked bool      `json:"is_blocked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) EntityID() string { return u.ID }

func NormalizeUser(raw map[string]any) (User, bool) {
	id := normalization.AsIdentifier(raw["id"])
	if id == "" {
		return User{}, false
	}
	user := User{
		ID:        id,
		Name:      normalization.FirstString(raw, "name", "fullName", "username"),
		Email:     normalization.AsString(raw["email"]),
		Phone:     normalization.FirstString(raw, "phone", "phoneNumber"),
		Role:      strings.ToLower(normalization.FirstString(raw, "role", "userType")),
		IsActive:  normalization.AsBool(normalization.FirstValue(raw, "is_active", "isActive")),
		IsBlocked: normalization.AsBool(normalization.FirstValue(raw, "is_blocked", "isBlocked")),
		CreatedAt: normalization.AsTime(raw["createdAt"]),
		UpdatedAt: normalization.AsTime(raw["updatedAt"]),
	}
	if user.Role == "" {
		if roles := normalization.AsInterfaceSlice(raw["roles"]); len(roles) > 0 {
			user.Role = strings.ToLower(normalization.AsString(roles[0]))
		}
	}
	if user.Role == "" {
		user.Role = RoleCustomer
	}
	return user, true
}

func Matches(u User, filters console.Filters) bool {
	return console.MatchValue(strings.ToLower(filters.Value(FilterRole)), u.Role) &&
		console.MatchFlag(filters, FlagIsActive, u.IsActive) &&
		console.MatchFlag(filters, FlagIsBlocked, u.IsBlocked)
}

func SearchFields(u User) []string {
	return []string{u.Name, u.Email, u.Phone}
}

func Stats(all []User) console.Stats {
	return console.CountStats(all, map[string]func(User) bool{
		StatActive:   func(u User) bool { return u.IsActive && !u.IsBlocked },
		StatInactive: func(u User) bool { return !u.IsActive && !u.IsBlocked },
		StatBlocked:  func(u User) bool { return u.IsBlocked },
		StatAdmins:   func(u User) bool { return u.Role == RoleAdmin },
	})
}

var columns = []console.Column[User]{
	{Header: "ID", Value: func(u User) any { return u.ID }},
	{Header: "Name", Value: func(u User) any { return u.Name }},
	{Header: "Email", Value: func(u User) any { return u.Email }},
	{Header: "Role", Value: func(u User) any { return u.Role }},
	{Header: "Active", Value: func(u User) any { return u.IsActive }},
	{Header: "Blocked", Value: func(u User) any { return u.IsBlocked }},
	{Header: "Joined", Value: func(u User) any { return u.CreatedAt }},
}

func Descriptor() console.Descriptor[User] {
	return console.Descriptor[User]{
		Entity:       Entity,
		Decode:       NormalizeUser,
		Predicate:    Matches,
		SearchFields: SearchFields,
		Stats:        Stats,
		Columns:      columns,
		NewDraft:     func() console.Draft { return &Draft{} },
		Samples:      Samples,
	}
}
