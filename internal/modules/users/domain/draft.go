package domain

import (
	"strings"

	console "adminConsole/internal/modules/console/domain"
)

// Draft updates a user profile. Accounts are created by the auth service, not the console.
type Draft struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"max=32"`
	Role  string `json:"role" validate:"omitempty,oneof=admin vendor customer"`
}

func (d *Draft) normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Role = strings.ToLower(strings.TrimSpace(d.Role))
}

func (d *Draft) Validate() error {
	d.normalize()
	return console.CheckDraft(d)
}

func (d *Draft) Payload() map[string]any {
	d.normalize()
	payload := map[string]any{"name": d.Name, "email": d.Email}
	if d.Phone != "" {
		payload["phone"] = d.Phone
	}
	if d.Role != "" {
		payload["role"] = d.Role
	}
	return payload
}
