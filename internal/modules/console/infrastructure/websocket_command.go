package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"adminConsole/internal/modules/console/domain"
)

const (
	commandSubscribe   = "subscribe"
	commandUnsubscribe = "unsubscribe"
	commandPing        = "ping"
)

// Command is a client-to-server websocket frame. Topic is a console topic
// ("products.changed") or a bare entity ("products"). Subscription commands may list
// several entities in Payload as {"entities": [...]}.
type Command struct {
	Action  string          `json:"action"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// targets returns the topic and the payload entities of a subscription command.
func (c Command) targets() []string {
	var targets []string
	if topic := strings.TrimSpace(c.Topic); topic != "" {
		targets = append(targets, topic)
	}
	if len(c.Payload) == 0 {
		return targets
	}
	var body struct {
		Entities []string `json:"entities"`
	}
	if err := json.Unmarshal(c.Payload, &body); err != nil {
		return targets
	}
	for _, entity := range body.Entities {
		if trimmed := strings.TrimSpace(entity); trimmed != "" {
			targets = append(targets, trimmed)
		}
	}
	return targets
}

type CommandHandler func(ctx context.Context, client *Client, cmd Command)

// CommandProcessor answers subscribe, unsubscribe and ping itself. Entity commands
// (refresh, view, ...) go to the fallback, which runs with a timeout off the read loop.
type CommandProcessor struct {
	hub             *Hub
	fallback        CommandHandler
	fallbackTimeout time.Duration
}

func NewCommandProcessor(hub *Hub, fallback CommandHandler) *CommandProcessor {
	return &CommandProcessor{
		hub:             hub,
		fallback:        fallback,
		fallbackTimeout: 10 * time.Second,
	}
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}
	switch action := normalizeAction(cmd.Action); action {
	case "":
		return
	case commandSubscribe:
		p.subscribe(client, cmd)
	case commandUnsubscribe:
		p.unsubscribe(client, cmd)
	case commandPing:
		client.SendDomainMessage(systemMessage(domain.TopicSystemPong, domain.ActionPong, client, nil))
	default:
		p.dispatch(client, action, cmd)
	}
}

// subscribe acknowledges the topics it resolved and reports the targets the hub refused.
func (p *CommandProcessor) subscribe(client *Client, cmd Command) {
	targets := cmd.targets()
	if len(targets) == 0 {
		replyCommandError(client, commandSubscribe, "topic is required")
		return
	}
	var accepted, rejected []string
	for _, target := range targets {
		topics := p.hub.subscribe(client, target)
		if len(topics) == 0 {
			rejected = append(rejected, target)
			continue
		}
		accepted = append(accepted, topics...)
	}
	slog.Debug("ws subscribe", slog.String("connId", client.connID), slog.Any("topics", accepted), slog.Any("rejected", rejected))
	if len(accepted) > 0 {
		client.SendDomainMessage(systemMessage(domain.TopicSystemSubscription, domain.ActionSubscribed, client, map[string]any{"topics": accepted}))
	}
	if len(rejected) > 0 {
		replyCommandError(client, commandSubscribe, "unknown topic: "+strings.Join(rejected, ", "))
	}
}

func (p *CommandProcessor) unsubscribe(client *Client, cmd Command) {
	var removed []string
	for _, target := range cmd.targets() {
		removed = append(removed, p.hub.unsubscribe(client, target)...)
	}
	if len(removed) == 0 {
		return
	}
	client.SendDomainMessage(systemMessage(domain.TopicSystemSubscription, domain.ActionUnsubscribed, client, map[string]any{"topics": removed}))
}

func (p *CommandProcessor) dispatch(client *Client, action string, cmd Command) {
	if p.fallback == nil {
		slog.Debug("ws command ignored", slog.String("connId", client.connID), slog.String("action", action))
		replyCommandError(client, action, "unsupported action")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.fallbackTimeout)
	go func() {
		defer cancel()
		select {
		case <-client.done:
			return
		default:
		}
		p.fallback(ctx, client, cmd)
	}()
}

func replyCommandError(client *Client, action, reason string) {
	client.SendDomainMessage(systemMessage(domain.TopicSystemError, domain.ActionError, client, map[string]string{"action": action, "error": reason}))
}

func systemMessage(topic, action string, client *Client, data any) *domain.Message {
	return &domain.Message{
		Topic:     topic,
		Entity:    domain.SystemEntity,
		Action:    action,
		Metadata:  map[string]string{"connId": client.connID},
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
