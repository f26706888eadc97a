package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/logging"
	"adminConsole/internal/shared/normalization"
)

const readRetryDelay = time.Second

type KafkaConsumer struct {
	reader *kafka.Reader
	topic  string
	logger *slog.Logger
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		topic:  topic,
		logger: logging.Component("kafka").With(slog.String("topic", topic)),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// Consume reads messages until ctx is cancelled. Handler errors are logged and the
// message is committed anyway; a refresh is not worth replaying.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(*domain.Message) error) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			c.logger.Warn("kafka read error", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readRetryDelay):
			}
			continue
		}
		msg := decodeMessage(m)
		c.logger.Info("kafka message consumed",
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("entity", msg.Entity),
			slog.String("action", msg.Action),
			slog.String("resourceId", msg.ResourceID),
		)
		if err := handler(msg); err != nil {
			c.logger.Warn("kafka handler error", slog.Int64("offset", m.Offset), slog.Any("error", err))
		}
	}
}

type rawEvent struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	ID         string            `json:"id"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       any               `json:"data"`
}

// decodeMessage turns a backend event into a console message. Events that are not JSON
// are described by their topic ("catalog.products.updated").
func decodeMessage(m kafka.Message) *domain.Message {
	msg := &domain.Message{Timestamp: m.Time.UTC()}
	if m.Time.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	var event rawEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		entity, action := inferEntityActionFromTopic(m.Topic)
		msg.Entity = entity
		msg.Action = action
		msg.Topic = domain.CustomTopic(entity, action)
		msg.Data = string(m.Value)
		return msg
	}

	inferredEntity, inferredAction := inferEntityActionFromTopic(m.Topic)
	msg.Entity = normalization.NormalizeEntity(firstNonEmpty(event.Entity, inferredEntity))
	msg.Action = strings.ToLower(firstNonEmpty(event.Action, inferredAction))
	msg.ResourceID = firstNonEmpty(event.ResourceID, event.ID)
	msg.Metadata = event.Metadata
	msg.Data = normalization.CanonicalizeIDs(event.Data)
	msg.Topic = firstNonEmpty(event.Topic, domain.CustomTopic(msg.Entity, msg.Action))
	return msg
}

func inferEntityActionFromTopic(topic string) (string, string) {
	parts := strings.Split(topic, ".")
	if len(parts) >= 2 {
		entity := strings.TrimSpace(parts[len(parts)-2])
		action := strings.TrimSpace(parts[len(parts)-1])
		if entity != "" && action != "" {
			return normalization.NormalizeEntity(entity), strings.ToLower(action)
		}
	}
	if entity := normalizeTopic(topic); entity != "" {
		return normalization.NormalizeEntity(entity), "unknown"
	}
	return "", "unknown"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func normalizeTopic(topic string) string {
	if idx := strings.LastIndex(topic, "."); idx >= 0 {
		topic = topic[idx+1:]
	}
	return strings.TrimSpace(topic)
}
