package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/application/usecase"
	"adminConsole/internal/modules/console/domain"
)

const (
	maxBodyBytes = 1 << 20
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ConsoleHandler serves the per-entity console API.
type ConsoleHandler struct {
	registry  *usecase.Registry
	exporter  port.Exporter
	broadcast *usecase.BroadcastUseCase
	timeout   time.Duration
}

func NewConsoleHandler(registry *usecase.Registry, exporter port.Exporter, broadcast *usecase.BroadcastUseCase, timeout time.Duration) *ConsoleHandler {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ConsoleHandler{registry: registry, exporter: exporter, broadcast: broadcast, timeout: timeout}
}

func (h *ConsoleHandler) lookup(c echo.Context) (usecase.EntityConsole, error) {
	entity := c.Param("entity")
	console, ok := h.registry.Lookup(entity)
	if !ok {
		slog.Warn("console entity not integrated", slog.String("entity", entity))
		return nil, echo.NewHTTPError(http.StatusNotFound, "entity "+strings.TrimSpace(entity)+" is not integrated")
	}
	return console, nil
}

func (h *ConsoleHandler) requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), h.timeout)
}

func (h *ConsoleHandler) Overview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.Overview())
}

func (h *ConsoleHandler) View(c echo.Context) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, console.View())
}

func (h *ConsoleHandler) Refresh(c echo.Context) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()
	if err := console.Refresh(ctx, tokenFrom(c)); err != nil {
		return fail(c, console.Entity(), err)
	}
	return c.JSON(http.StatusOK, console.View())
}

func (h *ConsoleHandler) SetFilters(c echo.Context) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	var filters domain.Filters
	if err := c.Bind(&filters); err != nil {
		return fail(c, console.Entity(), domain.ValidationError{Msg: "invalid filters"})
	}
	return c.JSON(http.StatusOK, console.SetFilters(filters))
}

type pageRequest struct {
	Page         int `json:"page"`
	ItemsPerPage int `json:"itemsPerPage"`
}

func (h *ConsoleHandler) GoToPage(c echo.Context) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	var body pageRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, console.Entity(), domain.ValidationError{Field: "page", Msg: "must be a number"})
	}
	view, err := console.GoToPage(body.Page)
	if err != nil {
		return fail(c, console.Entity(), err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *ConsoleHandler) SetPageSize(c echo.Context) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	var body pageRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, console.Entity(), domain.ValidationError{Field: "itemsPerPage", Msg: "must be a number"})
	}
	view, err := console.SetItemsPerPage(body.ItemsPerPage)
	if err != nil {
		return fail(c, console.Entity(), err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *ConsoleHandler) Select(c echo.Context) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	if !console.Select(c.Param("id")) {
		return fail(c, console.Entity(), port.ErrNotFound)
	}
	return c.JSON(http.StatusOK, console.View())
}

// Deselect clears the selection of the entity named by id.
func (h *ConsoleHandler) Deselect(c echo.Context) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	if !console.Deselect(c.Param("id")) {
		return fail(c, console.Entity(), port.ErrNotFound)
	}
	return c.JSON(http.StatusOK, console.View())
}

func (h *ConsoleHandler) Get(c echo.Context) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()
	record, err := console.Get(ctx, tokenFrom(c), c.Param("id"))
	if err != nil {
		return fail(c, console.Entity(), err)
	}
	return c.JSON(http.StatusOK, record)
}

func (h *ConsoleHandler) Create(c echo.Context) error {
	return h.write(c, http.StatusCreated, func(ctx context.Context, console usecase.EntityConsole, body []byte) (any, error) {
		return console.Create(ctx, tokenFrom(c), body)
	})
}

func (h *ConsoleHandler) Update(c echo.Context) error {
	return h.write(c, http.StatusOK, func(ctx context.Context, console usecase.EntityConsole, body []byte) (any, error) {
		return console.Update(ctx, tokenFrom(c), c.Param("id"), body)
	})
}

func (h *ConsoleHandler) ToggleStatus(c echo.Context) error {
	return h.write(c, http.StatusOK, func(ctx context.Context, console usecase.EntityConsole, body []byte) (any, error) {
		return console.ToggleStatus(ctx, tokenFrom(c), c.Param("id"), body)
	})
}

func (h *ConsoleHandler) Restore(c echo.Context) error {
	return h.write(c, http.StatusOK, func(ctx context.Context, console usecase.EntityConsole, _ []byte) (any, error) {
		return console.Restore(ctx, tokenFrom(c), c.Param("id"))
	})
}

func (h *ConsoleHandler) Delete(c echo.Context) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()
	if err := console.Delete(ctx, tokenFrom(c), c.Param("id")); err != nil {
		return fail(c, console.Entity(), err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ConsoleHandler) write(c echo.Context, status int, op func(context.Context, usecase.EntityConsole, []byte) (any, error)) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return fail(c, console.Entity(), domain.ValidationError{Msg: "unreadable body"})
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()
	record, err := op(ctx, console, body)
	if err != nil {
		return fail(c, console.Entity(), err)
	}
	return c.JSON(status, record)
}

// Export streams the filtered collection as a workbook.
func (h *ConsoleHandler) Export(c echo.Context) error {
	console, err := h.lookup(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := console.Export(&buf, h.exporter); err != nil {
		return fail(c, console.Entity(), err)
	}
	filename := fmt.Sprintf("%s-%s.xlsx", console.Entity(), time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

// ResetSession clears every container, as on logout, and tells connected views.
func (h *ConsoleHandler) ResetSession(c echo.Context) error {
	h.registry.ResetAll()
	msg := &domain.Message{
		Topic:     domain.TopicSystemReset,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionReset,
		Timestamp: time.Now().UTC(),
	}
	if claims := claimsFrom(c); claims != nil {
		msg.Metadata = map[string]string{"userId": claims.Subject}
	}
	h.broadcast.Execute(c.Request().Context(), msg)
	return c.NoContent(http.StatusNoContent)
}
