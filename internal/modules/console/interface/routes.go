package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/application/usecase"
	"adminConsole/internal/modules/console/infrastructure"
	"adminConsole/internal/shared/auth"
)

// Dependencies wires the console HTTP and websocket surface.
type Dependencies struct {
	Registry   *usecase.Registry
	Dashboard  *usecase.DashboardUseCase
	Broadcast  *usecase.BroadcastUseCase
	Hub        *infrastructure.Hub
	Exporter   port.Exporter
	Validator  auth.TokenValidator
	AdminRoles []string
	SendBuffer int
}

// Register mounts the console routes on e.
func Register(e *echo.Echo, deps Dependencies) {
	e.Use(RequestID())
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "clients": deps.Hub.ClientCount()})
	})
	deps.Hub.RestrictTopics(consoleTopicFilter(deps.Registry))
	e.GET("/ws/console", NewConsoleWebsocketHandler(deps.Hub, deps.Registry, deps.Validator, deps.AdminRoles, deps.SendBuffer))

	consoleHandler := NewConsoleHandler(deps.Registry, deps.Exporter, deps.Broadcast, 0)
	dashboardHandler := NewDashboardHandler(deps.Dashboard, 0)

	api := e.Group("/api/console", RequireAdmin(deps.Validator, deps.AdminRoles))
	api.GET("", consoleHandler.Overview)
	api.POST("/session/reset", consoleHandler.ResetSession)
	api.GET("/dashboard", dashboardHandler.Endpoints)
	api.GET("/dashboard/:key", dashboardHandler.Fetch)

	api.GET("/:entity", consoleHandler.View)
	api.POST("/:entity", consoleHandler.Create)
	api.POST("/:entity/refresh", consoleHandler.Refresh)
	api.PUT("/:entity/filters", consoleHandler.SetFilters)
	api.PUT("/:entity/page", consoleHandler.GoToPage)
	api.PUT("/:entity/page-size", consoleHandler.SetPageSize)
	api.GET("/:entity/export", consoleHandler.Export)
	api.GET("/:entity/:id", consoleHandler.Get)
	api.PUT("/:entity/:id", consoleHandler.Update)
	api.DELETE("/:entity/:id", consoleHandler.Delete)
	api.POST("/:entity/:id/toggle-status", consoleHandler.ToggleStatus)
	api.POST("/:entity/:id/restore", consoleHandler.Restore)
	api.POST("/:entity/:id/select", consoleHandler.Select)
	api.DELETE("/:entity/:id/select", consoleHandler.Deselect)
}
