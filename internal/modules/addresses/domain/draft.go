package domain

import (
	"strings"

	console "adminConsole/internal/modules/console/domain"
)

type Draft struct {
	UserID     string `json:"userId" validate:"required"`
	Label      string `json:"label" validate:"max=60"`
	Line1      string `json:"line1" validate:"required,max=200"`
	Line2      string `json:"line2" validate:"max=200"`
	City       string `json:"city" validate:"required,max=80"`
	State      string `json:"state" validate:"max=80"`
	PostalCode string `json:"postalCode" validate:"max=16"`
	Country    string `json:"country" validate:"omitempty,len=2"`
	IsDefault  bool   `json:"is_default"`
}

func (d *Draft) normalize() {
	d.UserID = strings.TrimSpace(d.UserID)
	d.Label = strings.TrimSpace(d.Label)
	d.Line1 = strings.TrimSpace(d.Line1)
	d.Line2 = strings.TrimSpace(d.Line2)
	d.City = strings.TrimSpace(d.City)
	d.State = strings.TrimSpace(d.State)
	d.PostalCode = strings.TrimSpace(d.PostalCode)
	d.Country = strings.ToUpper(strings.TrimSpace(d.Country))
}

func (d *Draft) Validate() error {
	d.normalize()
	return console.CheckDraft(d)
}

func (d *Draft) Payload() map[string]any {
	d.normalize()
	return map[string]any{
		"userId":     d.UserID,
		"label":      d.Label,
		"line1":      d.Line1,
		"line2":      d.Line2,
		"city":       d.City,
		"state":      d.State,
		"postalCode": d.PostalCode,
		"country":    d.Country,
		"is_default": d.IsDefault,
	}
}
