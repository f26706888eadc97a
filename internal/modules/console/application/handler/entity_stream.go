package handler

import (
	"context"
	"log/slog"
	"strings"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
)

// Refresher reloads one entity collection.
type Refresher interface {
	Entity() string
	Refresh(ctx context.Context, token string) error
}

// EntityStreamHandler turns backend change events read from a Kafka topic into a list
// refresh of the matching container. Only the allowed actions trigger a refresh.
type EntityStreamHandler struct {
	topic          string
	token          string
	allowedActions map[string]struct{}
	refresher      Refresher
}

// NewEntityStreamHandler builds a handler for topic. token is the service token used for
// the refresh since no console session is attached to a backend event.
func NewEntityStreamHandler(topic string, allowedActions []string, refresher Refresher, token string) *EntityStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &EntityStreamHandler{
		topic:          strings.TrimSpace(topic),
		token:          strings.TrimSpace(token),
		allowedActions: actionSet,
		refresher:      refresher,
	}
}

func (h *EntityStreamHandler) Topic() string { return h.topic }

func (h *EntityStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(strings.TrimSpace(msg.Action))]; !ok {
			slog.Debug("entity-stream action ignored", slog.String("topic", h.topic), slog.String("action", msg.Action))
			return nil
		}
	}
	slog.Info("entity-stream refresh", slog.String("entity", h.refresher.Entity()), slog.String("action", msg.Action), slog.String("resourceId", msg.ResourceID))
	return h.refresher.Refresh(ctx, h.token)
}

var _ port.TopicHandler = (*EntityStreamHandler)(nil)
