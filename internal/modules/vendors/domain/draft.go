package domain

import (
	"strings"

	console "adminConsole/internal/modules/console/domain"
)

type Draft struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	StoreName string `json:"storeName" validate:"max=120"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"max=32"`
}

func (d *Draft) normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.StoreName = strings.TrimSpace(d.StoreName)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
}

func (d *Draft) Validate() error {
	d.normalize()
	return console.CheckDraft(d)
}

func (d *Draft) Payload() map[string]any {
	d.normalize()
	payload := map[string]any{"name": d.Name, "email": d.Email}
	if d.StoreName != "" {
		payload["storeName"] = d.StoreName
	}
	if d.Phone != "" {
		payload["phone"] = d.Phone
	}
	return payload
}
