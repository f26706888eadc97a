package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"adminConsole/internal/modules/console/application/usecase"
	"adminConsole/internal/modules/console/domain"
	"adminConsole/internal/modules/console/infrastructure"
	"adminConsole/internal/shared/auth"
	"adminConsole/internal/shared/normalization"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewConsoleWebsocketHandler serves /ws/console. The JWT is validated before the
// upgrade; "entities" (comma separated) pre-subscribes the change and state topics of
// those entities. Further topics are managed with subscribe/unsubscribe commands.
func NewConsoleWebsocketHandler(
	hub *infrastructure.Hub,
	registry *usecase.Registry,
	validator auth.TokenValidator,
	roles []string,
	sendBuffer int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		token := auth.ExtractToken(c.Request(), "token")
		claims, err := validator.Validate(token)
		if err != nil {
			message := "invalid token"
			if errors.Is(err, auth.ErrMissingToken) {
				message = "missing token"
			}
			slog.Warn("ws console rejected", slog.String("reason", message), slog.Any("error", err))
			logger.Warnf("ws rejected: %s ip=%s reqID=%s", message, peerIP, requestID)
			return echo.NewHTTPError(http.StatusUnauthorized, message)
		}
		if !claims.HasAnyRole(roles) {
			slog.Warn("ws console forbidden", slog.String("userId", claims.Subject), slog.Any("roles", claims.Roles))
			return echo.NewHTTPError(http.StatusForbidden, auth.ErrForbiddenRole.Error())
		}

		topics := []string{domain.TopicSystemReset}
		for _, raw := range strings.Split(c.QueryParam("entities"), ",") {
			if _, ok := registry.Lookup(raw); !ok {
				continue
			}
			entity := normalization.NormalizeEntity(raw)
			topics = append(topics, domain.ChangedTopic(entity), domain.StateTopic(entity))
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws console upgrade failed", slog.Any("error", err))
			logger.Errorf("ws upgrade failed ip=%s reqID=%s: %v", peerIP, requestID, err)
			return err
		}

		userID := claims.RegisteredClaims.Subject
		sessionID := claims.SessionID
		client := infrastructure.NewClient(hub, conn, userID, sessionID, token, sendBuffer, newConsoleCommandHandler(registry))
		hub.AttachClient(client, topics)

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"userId":    userID,
				"sessionId": sessionID,
				"connId":    client.ConnID(),
			},
			Data: map[string]any{
				"entities": registry.Entities(),
				"topics":   topics,
				"roles":    claims.Roles,
			},
			Timestamp: time.Now().UTC(),
		})
		slog.Info("ws console connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.String("connId", client.ConnID()))
		logger.Infof("ws connected user=%s session=%s ip=%s reqID=%s", userID, sessionID, peerIP, requestID)
		return nil
	}
}

// consoleTopicFilter admits system topics and the topics of registered entities.
func consoleTopicFilter(registry *usecase.Registry) func(string) bool {
	return func(topic string) bool {
		entity, _ := domain.SplitTopic(topic)
		if entity == domain.SystemEntity {
			return true
		}
		_, ok := registry.Lookup(entity)
		return ok
	}
}

// newConsoleCommandHandler answers the entity commands a console view may send:
// "refresh" reloads the collection and "view" returns the current view to the sender.
func newConsoleCommandHandler(registry *usecase.Registry) infrastructure.CommandHandler {
	return func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		action := strings.ToLower(strings.TrimSpace(cmd.Action))
		entityName, _ := domain.SplitTopic(cmd.Topic)
		console, ok := registry.Lookup(entityName)
		if !ok {
			sendCommandError(client, entityName, action, "unknown entity")
			return
		}
		switch action {
		case "refresh", "list":
			if err := console.Refresh(ctx, client.Token()); err != nil {
				slog.Warn("ws console refresh failed", slog.String("entity", console.Entity()), slog.Any("error", err))
				sendCommandError(client, console.Entity(), action, domain.UserMessage(err))
			}
		case "view", "snapshot":
			client.SendDomainMessage(&domain.Message{
				Topic:     domain.StateTopic(console.Entity()),
				Entity:    console.Entity(),
				Action:    domain.ActionState,
				Metadata:  map[string]string{"sessionId": client.SessionID()},
				Data:      console.View(),
				Timestamp: time.Now().UTC(),
			})
		default:
			slog.Debug("ws console unknown action", slog.String("entity", console.Entity()), slog.String("action", cmd.Action))
			sendCommandError(client, console.Entity(), action, "unsupported action")
		}
	}
}

func sendCommandError(client *infrastructure.Client, entity, action, reason string) {
	topic := domain.TopicSystemError
	if entity = strings.TrimSpace(entity); entity != "" {
		topic = domain.CustomTopic(entity, domain.ActionError)
	} else {
		entity = domain.SystemEntity
	}
	client.SendDomainMessage(&domain.Message{
		Topic:     topic,
		Entity:    entity,
		Action:    domain.ActionError,
		Metadata:  map[string]string{"action": action, "reason": reason},
		Data:      map[string]string{"error": reason},
		Timestamp: time.Now().UTC(),
	})
}
