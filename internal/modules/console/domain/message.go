package domain

import (
	"strings"
	"time"
)

// Metadata holds flat string attributes attached to a message.
type Metadata map[string]string

// Message is the unit fanned out to console websocket sessions and in-process handlers.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewChangeMessage builds the "<entity>.changed" message for an applied operation.
func NewChangeMessage(entity, action, resourceID string, meta Metadata, data any, at time.Time) *Message {
	entityName := strings.TrimSpace(entity)
	metadata := merge(Metadata{"action": strings.TrimSpace(action)}, meta)
	return &Message{
		Topic:      ChangedTopic(entityName),
		Entity:     entityName,
		Action:     strings.TrimSpace(action),
		ResourceID: strings.TrimSpace(resourceID),
		Metadata:   map[string]string(metadata),
		Data:       data,
		Timestamp:  at.UTC(),
	}
}

// Clone returns a copy whose metadata can be modified independently.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	cloned := *m
	if m.Metadata != nil {
		cloned.Metadata = make(map[string]string, len(m.Metadata))
		for key, value := range m.Metadata {
			cloned.Metadata[key] = value
		}
	}
	return &cloned
}

func merge(target Metadata, extras Metadata) Metadata {
	if len(extras) == 0 {
		return target
	}
	if target == nil {
		target = Metadata{}
	}
	for key, value := range extras {
		trimmedKey := strings.TrimSpace(key)
		trimmedValue := strings.TrimSpace(value)
		if trimmedKey == "" || trimmedValue == "" {
			continue
		}
		target[trimmedKey] = trimmedValue
	}
	return target
}
