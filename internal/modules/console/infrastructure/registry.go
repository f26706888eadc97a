package infrastructure

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
)

// HandlerRegistry is the in-process event bus. Several handlers may share a topic; they
// run in registration order on the publishing goroutine.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string][]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string][]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	if h == nil {
		return
	}
	topic := strings.TrimSpace(h.Topic())
	if topic == "" {
		return
	}
	r.mu.Lock()
	r.handlers[topic] = append(r.handlers[topic], h)
	r.mu.Unlock()
}

// Topics lists the topics with at least one handler.
func (r *HandlerRegistry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch runs every handler registered for topic. All handlers run even when one
// fails; their errors are joined.
func (r *HandlerRegistry) Dispatch(ctx context.Context, topic string, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	r.mu.RLock()
	handlers := append([]port.TopicHandler(nil), r.handlers[strings.TrimSpace(topic)]...)
	r.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler.Handle(ctx, msg); err != nil {
			slog.Warn("topic handler error", slog.String("topic", topic), slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Publish dispatches msg on its own topic.
func (r *HandlerRegistry) Publish(ctx context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	_ = r.Dispatch(ctx, msg.Topic, msg)
}

var _ port.EventPublisher = (*HandlerRegistry)(nil)
