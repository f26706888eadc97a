package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/application/usecase"
	"adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/httputil"
)

var consoleErrors = httputil.NewErrorMapper().
	WithMatcher(domain.IsValidation, http.StatusBadRequest, "").
	WithMatcher(domain.IsBusiness, http.StatusUnprocessableEntity, "").
	WithMapping(domain.ErrInvalidPageSize, http.StatusBadRequest, "").
	WithMapping(usecase.ErrMissingIdentifier, http.StatusBadRequest, "").
	WithMapping(domain.ErrPageOutOfRange, http.StatusConflict, "").
	WithMapping(domain.ErrStaleResponse, http.StatusConflict, "response superseded by a newer request").
	WithMapping(port.ErrForbidden, http.StatusForbidden, "forbidden").
	WithMapping(port.ErrNotFound, http.StatusNotFound, "not found").
	WithMapping(port.ErrUnsupported, http.StatusMethodNotAllowed, "operation not supported").
	WithMapping(domain.ErrMalformedResponse, http.StatusBadGateway, "unexpected backend response").
	WithMatcher(domain.IsTransport, http.StatusBadGateway, "backend unavailable")

// fail converts err into the HTTP error rendered by echo.
func fail(c echo.Context, entity string, err error) error {
	info := consoleErrors.Map(err)
	attrs := []any{
		slog.String("entity", entity),
		slog.String("path", c.Path()),
		slog.Int("status", info.Status),
		slog.String("requestId", c.Response().Header().Get(echo.HeaderXRequestID)),
		slog.Any("error", err),
	}
	if info.Status >= http.StatusInternalServerError {
		slog.Error("console request failed", attrs...)
	} else {
		slog.Warn("console request rejected", attrs...)
	}
	return echo.NewHTTPError(info.Status, info.Message)
}
