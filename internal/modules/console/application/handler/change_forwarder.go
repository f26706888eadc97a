package handler

import (
	"context"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/application/usecase"
	"adminConsole/internal/modules/console/domain"
)

// ChangeForwarder relays "<entity>.changed" to the websocket sessions.
type ChangeForwarder struct {
	entity      string
	broadcastUC *usecase.BroadcastUseCase
}

func NewChangeForwarder(entity string, broadcastUC *usecase.BroadcastUseCase) *ChangeForwarder {
	return &ChangeForwarder{entity: entity, broadcastUC: broadcastUC}
}

func (h *ChangeForwarder) Topic() string { return domain.ChangedTopic(h.entity) }

func (h *ChangeForwarder) Handle(ctx context.Context, msg *domain.Message) error {
	h.broadcastUC.Execute(ctx, msg)
	return nil
}

var _ port.TopicHandler = (*ChangeForwarder)(nil)
