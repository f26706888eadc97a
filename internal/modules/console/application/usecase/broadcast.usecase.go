package usecase

import (
	"context"
	"time"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
)

// BroadcastUseCase pushes messages to the console websocket sessions.
type BroadcastUseCase struct {
	broadcaster port.Broadcaster
	now         func() time.Time
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b, now: time.Now}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	if uc == nil || uc.broadcaster == nil || msg == nil {
		return
	}
	uc.broadcaster.Broadcast(ctx, msg)
}

// WatchState broadcasts "<entity>.state" for changes that never reach the backend:
// filters, page window, selection and reset. Request outcomes travel as
// "<entity>.changed" through the event bus instead.
func (uc *BroadcastUseCase) WatchState(console EntityConsole) {
	if console == nil {
		return
	}
	console.OnChange(func(change domain.Change) {
		switch change.Action {
		case domain.ActionFiltersChanged, domain.ActionPageChanged, domain.ActionSelected, domain.ActionReset:
		default:
			return
		}
		msg := &domain.Message{
			Topic:      domain.StateTopic(change.Entity),
			Entity:     change.Entity,
			Action:     change.Action,
			ResourceID: change.ResourceID,
			Metadata:   map[string]string{"action": change.Action},
			Timestamp:  change.At,
		}
		if msg.Timestamp.IsZero() {
			msg.Timestamp = uc.now().UTC()
		}
		uc.Execute(context.Background(), msg)
	})
}
