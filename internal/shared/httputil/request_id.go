package httputil

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID carries the request id between the console, this service and the backend.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// NewRequestID returns a random request id.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID stores id in ctx so outgoing backend calls can forward it.
func WithRequestID(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
