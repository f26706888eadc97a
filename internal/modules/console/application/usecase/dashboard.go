package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/normalization"
)

var (
	// ErrMissingIdentifier indicates a dashboard endpoint needs an identifier that was not provided.
	ErrMissingIdentifier = errors.New("missing dashboard identifier")
)

// DashboardEndpoint describes how to resolve a REST endpoint for dashboard data.
type DashboardEndpoint struct {
	Key                string   `json:"key"`
	Title              string   `json:"title"`
	PathTemplate       string   `json:"-"`
	RequiresIdentifier bool     `json:"requiresIdentifier"`
	IdentifierParam    string   `json:"identifierParam,omitempty"`
	QueryParams        []string `json:"queryParams,omitempty"`
	// DependsOn lists the entities whose changes make cached payloads obsolete.
	DependsOn []string `json:"dependsOn,omitempty"`
}

// BuildPath resolves the HTTP path for the endpoint.
func (cfg DashboardEndpoint) BuildPath(identifier string) (string, error) {
	path := strings.TrimSpace(cfg.PathTemplate)
	if path == "" {
		return "", fmt.Errorf("dashboard endpoint %s missing path", cfg.Key)
	}
	if cfg.RequiresIdentifier {
		trimmed := strings.TrimSpace(identifier)
		if trimmed == "" {
			return "", ErrMissingIdentifier
		}
		return fmt.Sprintf(path, url.PathEscape(trimmed)), nil
	}
	return path, nil
}

// RequestFromValues builds a request from HTTP query parameters.
func (cfg DashboardEndpoint) RequestFromValues(values url.Values) domain.AnalyticsRequest {
	req := domain.AnalyticsRequest{}
	if cfg.IdentifierParam != "" {
		req.Identifier = strings.TrimSpace(values.Get(cfg.IdentifierParam))
	}
	if len(cfg.QueryParams) > 0 {
		req.Query = make(map[string]string, len(cfg.QueryParams))
		for _, key := range cfg.QueryParams {
			if value := strings.TrimSpace(values.Get(key)); value != "" {
				req.Query[key] = value
			}
		}
	}
	return cfg.SanitizeRequest(req)
}

// SanitizeRequest keeps only the query parameters the endpoint allows.
func (cfg DashboardEndpoint) SanitizeRequest(req domain.AnalyticsRequest) domain.AnalyticsRequest {
	sanitized := domain.AnalyticsRequest{Identifier: strings.TrimSpace(req.Identifier)}
	if len(cfg.QueryParams) == 0 {
		return sanitized
	}
	query := make(map[string]string, len(cfg.QueryParams))
	for _, key := range cfg.QueryParams {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			continue
		}
		if value := strings.TrimSpace(req.Query[trimmedKey]); value != "" {
			query[trimmedKey] = value
		}
	}
	if len(query) > 0 {
		sanitized.Query = query
	}
	return sanitized
}

// DashboardUseCase fetches dashboard analytics and keeps the last good payload of each
// request. When the backend is unreachable the cached payload is served marked stale.
type DashboardUseCase struct {
	fetcher   port.AnalyticsFetcher
	endpoints map[string]DashboardEndpoint
	cache     *snapshotCache
	now       func() time.Time
}

func NewDashboardUseCase(fetcher port.AnalyticsFetcher) *DashboardUseCase {
	return &DashboardUseCase{
		fetcher:   fetcher,
		endpoints: defaultDashboardEndpoints(),
		cache:     newSnapshotCache(),
		now:       time.Now,
	}
}

func (uc *DashboardUseCase) Endpoint(key string) (DashboardEndpoint, bool) {
	cfg, ok := uc.endpoints[strings.ToLower(strings.TrimSpace(key))]
	return cfg, ok
}

// Endpoints lists the configured endpoints ordered by key.
func (uc *DashboardUseCase) Endpoints() []DashboardEndpoint {
	list := make([]DashboardEndpoint, 0, len(uc.endpoints))
	for _, cfg := range uc.endpoints {
		list = append(list, cfg)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return list
}

// Fetch resolves the endpoint, fetches through the envelope gateway and caches the
// result. Business failures are returned as is; transport failures fall back to the
// cached payload when one exists.
func (uc *DashboardUseCase) Fetch(ctx context.Context, token, key string, request domain.AnalyticsRequest) (*domain.AnalyticsSnapshot, error) {
	cfg, ok := uc.Endpoint(key)
	if !ok {
		slog.Warn("dashboard endpoint unsupported", slog.String("key", key))
		return nil, port.ErrUnsupported
	}
	sanitized := cfg.SanitizeRequest(request)
	path, err := cfg.BuildPath(sanitized.Identifier)
	if err != nil {
		return nil, err
	}

	slog.Debug("dashboard fetch", slog.String("key", cfg.Key), slog.Any("query", sanitized.Query))
	env, err := uc.fetcher.Fetch(ctx, strings.TrimSpace(token), path, sanitized.Query)
	if err == nil {
		err = env.Err()
	}
	if err != nil {
		if domain.IsTransport(err) || errors.Is(err, context.DeadlineExceeded) {
			if cached, ok := uc.cache.get(cfg.Key, sanitized); ok {
				slog.Warn("dashboard fetch failed, serving cached payload", slog.String("key", cfg.Key), slog.Any("error", err))
				snapshot := cached.snapshot
				snapshot.Stale = true
				return &snapshot, nil
			}
		}
		slog.Warn("dashboard fetch failed", slog.String("key", cfg.Key), slog.Any("error", err))
		return nil, err
	}

	snapshot := domain.AnalyticsSnapshot{
		Key:       cfg.Key,
		Request:   sanitized.Clone(),
		Payload:   env.Response,
		FetchedAt: uc.now().UTC(),
	}
	uc.cache.set(cfg.Key, sanitized, snapshot)
	return &snapshot, nil
}

// FetchValues is Fetch with the request read from HTTP query parameters.
func (uc *DashboardUseCase) FetchValues(ctx context.Context, token, key string, values url.Values) (*domain.AnalyticsSnapshot, error) {
	cfg, ok := uc.Endpoint(key)
	if !ok {
		return nil, port.ErrUnsupported
	}
	return uc.Fetch(ctx, token, cfg.Key, cfg.RequestFromValues(values))
}

// Invalidate drops the cached payloads of every endpoint depending on entity and
// returns the affected keys.
func (uc *DashboardUseCase) Invalidate(entity string) []string {
	entity = normalization.NormalizeEntity(entity)
	var affected []string
	for _, cfg := range uc.Endpoints() {
		for _, dependency := range cfg.DependsOn {
			if dependency != entity {
				continue
			}
			if removed := uc.cache.drop(cfg.Key); removed > 0 {
				slog.Debug("dashboard cache invalidated", slog.String("key", cfg.Key), slog.String("entity", entity), slog.Int("entries", removed))
			}
			affected = append(affected, cfg.Key)
			break
		}
	}
	return affected
}

// Reset forgets every cached payload.
func (uc *DashboardUseCase) Reset() {
	uc.cache.clear()
}

func defaultDashboardEndpoints() map[string]DashboardEndpoint {
	entries := []DashboardEndpoint{
		{
			Key:          "sales-overview",
			Title:        "Sales overview",
			PathTemplate: "/api/v1/admin/analytics/sales",
			QueryParams:  []string{"startDate", "endDate"},
			DependsOn:    []string{"orders"},
		},
		{
			Key:          "order-trend",
			Title:        "Order trend",
			PathTemplate: "/api/v1/admin/analytics/orders/trend",
			QueryParams:  []string{"period", "startDate", "endDate"},
			DependsOn:    []string{"orders"},
		},
		{
			Key:          "top-products",
			Title:        "Top products",
			PathTemplate: "/api/v1/admin/analytics/products/top",
			QueryParams:  []string{"limit", "startDate"},
			DependsOn:    []string{"orders", "products"},
		},
		{
			Key:                "vendor-performance",
			Title:              "Vendor performance",
			PathTemplate:       "/api/v1/admin/analytics/vendors/%s/performance",
			RequiresIdentifier: true,
			IdentifierParam:    "vendorId",
			QueryParams:        []string{"startDate", "endDate"},
			DependsOn:          []string{"orders", "vendors"},
		},
		{
			Key:          "user-growth",
			Title:        "User growth",
			PathTemplate: "/api/v1/admin/analytics/users/growth",
			QueryParams:  []string{"period"},
			DependsOn:    []string{"users"},
		},
	}

	registry := make(map[string]DashboardEndpoint, len(entries))
	for _, entry := range entries {
		registry[entry.Key] = entry
	}
	return registry
}
