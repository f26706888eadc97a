package port

import (
	"context"
	"io"

	"adminConsole/internal/modules/console/domain"
)

// Broadcaster delivers messages to connected console websocket sessions.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// EventPublisher hands a message to every in-process handler subscribed to its topic.
type EventPublisher interface {
	Publish(ctx context.Context, msg *domain.Message)
}

// TopicHandler is implemented by handlers registered per topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}

// CategorySource lists the categories products may be assigned to.
type CategorySource interface {
	ActiveCategories(ctx context.Context) ([]domain.Option, error)
}

// CategorySourceFunc adapts a function to CategorySource.
type CategorySourceFunc func(ctx context.Context) ([]domain.Option, error)

func (f CategorySourceFunc) ActiveCategories(ctx context.Context) ([]domain.Option, error) {
	return f(ctx)
}

// Exporter renders rows as a spreadsheet.
type Exporter interface {
	Write(w io.Writer, sheet string, headers []string, rows [][]any) error
}
