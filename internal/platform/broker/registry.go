package broker

import (
	"context"
	"log/slog"

	"adminConsole/internal/modules/console/domain"
)

// Dispatcher routes a decoded event to the handlers registered for a kafka topic.
type Dispatcher interface {
	Dispatch(ctx context.Context, topic string, msg *domain.Message) error
}

// StartKafkaConsumers starts one consumer goroutine per topic. Messages are dispatched
// under the kafka topic name, not the event's own topic, so backend events never reach
// the handlers of console "<entity>.changed" topics.
func StartKafkaConsumers(
	ctx context.Context,
	dispatcher Dispatcher,
	brokers []string,
	groupID string,
	topics []string,
) {
	if len(brokers) == 0 || len(topics) == 0 {
		slog.Info("kafka consumers disabled", slog.Int("brokers", len(brokers)), slog.Int("topics", len(topics)))
		return
	}
	for _, topic := range topics {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			err := consumer.Consume(ctx, func(msg *domain.Message) error {
				return dispatcher.Dispatch(ctx, tp, msg)
			})
			slog.Info("kafka consumer stopped", slog.String("topic", tp), slog.Any("reason", err))
		}(topic)
	}
}
