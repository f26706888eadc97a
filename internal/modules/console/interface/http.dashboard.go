package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"adminConsole/internal/modules/console/application/usecase"
)

type DashboardHandler struct {
	dashboard *usecase.DashboardUseCase
	timeout   time.Duration
}

func NewDashboardHandler(dashboard *usecase.DashboardUseCase, timeout time.Duration) *DashboardHandler {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DashboardHandler{dashboard: dashboard, timeout: timeout}
}

func (h *DashboardHandler) Endpoints(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.Endpoints())
}

func (h *DashboardHandler) Fetch(c echo.Context) error {
	key := c.Param("key")
	if _, ok := h.dashboard.Endpoint(key); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "dashboard "+key+" is not configured")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()
	snapshot, err := h.dashboard.FetchValues(ctx, tokenFrom(c), key, c.QueryParams())
	if err != nil {
		return fail(c, "dashboard", err)
	}
	return c.JSON(http.StatusOK, snapshot)
}
