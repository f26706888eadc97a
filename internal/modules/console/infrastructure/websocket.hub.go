package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/normalization"
)

// Hub fans console messages out to websocket clients subscribed to their topic.
type Hub struct {
	topics  map[string]map[*Client]struct{}
	clients map[string]*Client
	global  map[*Client]struct{}
	allow   func(topic string) bool
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		topics:  make(map[string]map[*Client]struct{}),
		clients: make(map[string]*Client),
		global:  make(map[*Client]struct{}),
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.clients[c.connID]; ok && existing != c {
		h.detachLocked(existing)
	}
	h.clients[c.connID] = c
	slog.Info("ws client registered", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.String("connId", c.connID))
}

// RestrictTopics makes subscribe refuse every topic allow rejects.
func (h *Hub) RestrictTopics(allow func(topic string) bool) {
	h.mu.Lock()
	h.allow = allow
	h.mu.Unlock()
}

// subscribe adds c to the topics target resolves to and returns them. Topics refused by
// the hub's restriction are skipped.
func (h *Hub) subscribe(c *Client, target string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var topics []string
	for _, resolved := range expandTopic(target) {
		if h.allow != nil && !h.allow(resolved) {
			continue
		}
		topics = append(topics, resolved)
	}
	for _, resolved := range topics {
		if h.topics[resolved] == nil {
			h.topics[resolved] = make(map[*Client]struct{})
		}
		h.topics[resolved][c] = struct{}{}
		c.subscribed[resolved] = struct{}{}
	}
	return topics
}

// unsubscribe removes c from the topics target resolves to and returns the ones it was
// subscribed to.
func (h *Hub) unsubscribe(c *Client, target string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var removed []string
	for _, resolved := range expandTopic(target) {
		if _, ok := c.subscribed[resolved]; !ok {
			continue
		}
		if subs, ok := h.topics[resolved]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, resolved)
			}
		}
		delete(c.subscribed, resolved)
		removed = append(removed, resolved)
	}
	slog.Debug("ws client unsubscribed", slog.String("connId", c.connID), slog.Any("topics", removed))
	return removed
}

func (h *Hub) detachClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	for topic := range c.subscribed {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	if current, ok := h.clients[c.connID]; ok && current == c {
		delete(h.clients, c.connID)
	}
	delete(h.global, c)
	c.close()
	slog.Info("ws client detached", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.String("connId", c.connID))
}

// Broadcast delivers msg to the clients subscribed to its topic and to global
// subscribers. Metadata "userId" or "sessionId" restricts delivery to one user or
// session. A client whose buffer is full is detached.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	clientsMap := h.topics[msg.Topic]
	clients := make([]*Client, 0, len(clientsMap)+len(h.global))
	seen := make(map[*Client]struct{}, len(clientsMap)+len(h.global))
	for c := range clientsMap {
		clients = append(clients, c)
		seen[c] = struct{}{}
	}
	for c := range h.global {
		if _, ok := seen[c]; ok {
			continue
		}
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	targetUser := ""
	targetSession := ""
	if msg.Metadata != nil {
		targetUser = strings.TrimSpace(msg.Metadata["userId"])
		targetSession = strings.TrimSpace(msg.Metadata["sessionId"])
	}

	for _, c := range clients {
		if targetUser != "" && c.userID != targetUser {
			continue
		}
		if targetSession != "" && c.sessionID != targetSession {
			continue
		}
		if !c.enqueue(data) {
			slog.Warn("ws send buffer full", slog.String("connId", c.connID), slog.String("topic", msg.Topic))
			go h.detachClient(c)
		}
	}
}

// AttachClient registers c and subscribes it to topics.
func (h *Hub) AttachClient(c *Client, topics []string) {
	h.registerClient(c)
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			h.subscribe(c, trimmed)
		}
	}
	slog.Info("ws client attached", slog.String("userId", c.userID), slog.String("connId", c.connID), slog.Any("topics", topics))
}

// AttachClientToAll registers c as a global subscriber receiving every message.
func (h *Hub) AttachClientToAll(c *Client) {
	h.registerClient(c)
	h.mu.Lock()
	h.global[c] = struct{}{}
	h.mu.Unlock()
	slog.Info("ws client attached to all topics", slog.String("userId", c.userID), slog.String("connId", c.connID))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// expandTopic resolves a bare entity name ("category") to its console topics.
func expandTopic(topic string) []string {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return nil
	}
	if strings.Contains(trimmed, ".") {
		return []string{trimmed}
	}
	entity := normalization.NormalizeEntity(trimmed)
	return []string{domain.ChangedTopic(entity), domain.StateTopic(entity)}
}

var _ port.Broadcaster = (*Hub)(nil)
