package infrastructure

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/normalization"
)

// RESTGateway implements port.Gateway against the admin REST API.
type RESTGateway struct {
	rest      *RESTClient
	endpoints map[string]entityEndpoint
}

func NewRESTGateway(baseURL string, timeout time.Duration, client *http.Client) *RESTGateway {
	return &RESTGateway{rest: NewRESTClient(baseURL, timeout, client), endpoints: entityEndpoints}
}

func (g *RESTGateway) List(ctx context.Context, token, entity string, query domain.PagedQuery) (*domain.Envelope, error) {
	return g.call(ctx, token, entity, opList, "", query.ToURLValues(), nil)
}

func (g *RESTGateway) Detail(ctx context.Context, token, entity, id string) (*domain.Envelope, error) {
	return g.call(ctx, token, entity, opDetail, id, nil, nil)
}

func (g *RESTGateway) Create(ctx context.Context, token, entity string, payload map[string]any) (*domain.Envelope, error) {
	return g.call(ctx, token, entity, opCreate, "", nil, payload)
}

func (g *RESTGateway) Update(ctx context.Context, token, entity, id string, payload map[string]any) (*domain.Envelope, error) {
	return g.call(ctx, token, entity, opUpdate, id, nil, payload)
}

func (g *RESTGateway) Delete(ctx context.Context, token, entity, id string) (*domain.Envelope, error) {
	return g.call(ctx, token, entity, opDelete, id, nil, nil)
}

func (g *RESTGateway) ToggleStatus(ctx context.Context, token, entity, id string, payload map[string]any) (*domain.Envelope, error) {
	return g.call(ctx, token, entity, opToggle, id, nil, payload)
}

func (g *RESTGateway) Restore(ctx context.Context, token, entity, id string) (*domain.Envelope, error) {
	return g.call(ctx, token, entity, opRestore, id, nil, nil)
}

func (g *RESTGateway) call(ctx context.Context, token, entity string, op operation, id string, query url.Values, payload map[string]any) (*domain.Envelope, error) {
	name := normalization.NormalizeEntity(entity)
	endpoint, ok := g.endpoints[name]
	if !ok {
		slog.Warn("gateway entity unsupported", slog.String("entity", entity))
		return nil, port.ErrUnsupported
	}
	target, ok := endpoint.routes[op]
	if !ok {
		slog.Debug("gateway operation unsupported", slog.String("entity", name), slog.String("operation", string(op)))
		return nil, port.ErrUnsupported
	}
	path, err := target.path(id)
	if err != nil {
		return nil, err
	}

	var body any
	if payload != nil {
		body = payload
	}
	slog.Debug("gateway call", slog.String("entity", name), slog.String("operation", string(op)), slog.String("id", id))
	return g.rest.Envelope(ctx, token, target.method, path, query, body)
}

var _ port.Gateway = (*RESTGateway)(nil)
