package port

import (
	"context"
	"errors"

	"adminConsole/internal/modules/console/domain"
)

var (
	// ErrForbidden indicates the backend rejected the request due to authorization.
	ErrForbidden = errors.New("backend request forbidden")
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("backend resource not found")
	// ErrUnsupported is returned when an entity does not offer the requested operation.
	ErrUnsupported = errors.New("operation unsupported for entity")
)

// Gateway talks to the REST backend. Every method returns the decoded envelope when the
// transport succeeded, whatever its responseCode; callers check Envelope.Err themselves.
type Gateway interface {
	List(ctx context.Context, token, entity string, query domain.PagedQuery) (*domain.Envelope, error)
	Detail(ctx context.Context, token, entity, id string) (*domain.Envelope, error)
	Create(ctx context.Context, token, entity string, payload map[string]any) (*domain.Envelope, error)
	Update(ctx context.Context, token, entity, id string, payload map[string]any) (*domain.Envelope, error)
	Delete(ctx context.Context, token, entity, id string) (*domain.Envelope, error)
	ToggleStatus(ctx context.Context, token, entity, id string, payload map[string]any) (*domain.Envelope, error)
	Restore(ctx context.Context, token, entity, id string) (*domain.Envelope, error)
}
