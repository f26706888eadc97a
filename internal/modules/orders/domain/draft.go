package domain

import (
	"fmt"
	"strings"

	console "adminConsole/internal/modules/console/domain"
)

// StatusDraft is the only order write the console offers: a status change.
type StatusDraft struct {
	Status  string `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
	Comment string `json:"comment,omitempty" validate:"max=500"`

	// Current is the status the order had when the form was opened, if known.
	Current OrderStatus `json:"-"`
}

func (d *StatusDraft) normalize() {
	d.Status = string(NormalizeOrderStatus(d.Status))
	d.Comment = strings.TrimSpace(d.Comment)
}

func (d *StatusDraft) Validate() error {
	d.normalize()
	return console.CheckDraft(d, d.leavesFinalState)
}

func (d *StatusDraft) leavesFinalState() error {
	if d.Current.Final() && OrderStatus(d.Status) != d.Current {
		return console.ValidationError{Field: "status", Msg: fmt.Sprintf("order is already %s", strings.ToLower(string(d.Current)))}
	}
	return nil
}

func (d *StatusDraft) Payload() map[string]any {
	d.normalize()
	payload := map[string]any{"status": d.Status}
	if d.Comment != "" {
		payload["comment"] = d.Comment
	}
	return payload
}
