package domain

import (
	"strings"

	console "adminConsole/internal/modules/console/domain"
)

// Draft is the category create/update form.
type Draft struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description" validate:"max=500"`
	ParentID    string `json:"parentId,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (d *Draft) normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.ParentID = strings.TrimSpace(d.ParentID)
}

func (d *Draft) Validate() error {
	d.normalize()
	return console.CheckDraft(d)
}

func (d *Draft) Payload() map[string]any {
	d.normalize()
	payload := map[string]any{
		"name":        d.Name,
		"description": d.Description,
	}
	if d.ParentID != "" {
		payload["parentId"] = d.ParentID
	}
	if d.IsActive != nil {
		payload["is_active"] = *d.IsActive
	}
	return payload
}
