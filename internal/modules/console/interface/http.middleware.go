package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"adminConsole/internal/shared/auth"
	"adminConsole/internal/shared/httputil"
)

const (
	contextKeyClaims = "console.claims"
	contextKeyToken  = "console.token"
)

// RequestID assigns every request an id (reusing an incoming X-Request-ID) and stores it
// in the request context so gateway calls forward it to the backend.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    httputil.NewRequestID,
		TargetHeader: httputil.HeaderRequestID,
		RequestIDHandler: func(c echo.Context, requestID string) {
			req := c.Request()
			c.SetRequest(req.WithContext(httputil.WithRequestID(req.Context(), requestID)))
		},
	})
}

// RequireAdmin validates the console JWT and rejects sessions without an admin role.
// The raw token is kept for the backend calls made on behalf of the session.
func RequireAdmin(validator auth.TokenValidator, roles []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := auth.ExtractToken(c.Request(), "token")
			claims, err := validator.Validate(token)
			if err != nil {
				status := http.StatusUnauthorized
				message := "invalid token"
				if errors.Is(err, auth.ErrMissingToken) {
					message = "missing token"
				}
				slog.Warn("console auth rejected", slog.String("path", c.Path()), slog.String("reason", message), slog.Any("error", err))
				return echo.NewHTTPError(status, message)
			}
			if !claims.HasAnyRole(roles) {
				slog.Warn("console auth forbidden", slog.String("userId", claims.Subject), slog.Any("roles", claims.Roles))
				return echo.NewHTTPError(http.StatusForbidden, auth.ErrForbiddenRole.Error())
			}
			c.Set(contextKeyClaims, claims)
			c.Set(contextKeyToken, token)
			return next(c)
		}
	}
}

func tokenFrom(c echo.Context) string {
	token, _ := c.Get(contextKeyToken).(string)
	return strings.TrimSpace(token)
}

func claimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(contextKeyClaims).(*auth.Claims)
	return claims
}
