package usecase

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
)

type fakeFetcher struct {
	env   *domain.Envelope
	err   error
	path  string
	query map[string]string
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string, path string, query map[string]string) (*domain.Envelope, error) {
	f.calls++
	f.path = path
	f.query = query
	return f.env, f.err
}

func TestDashboardEndpointSanitizesRequest(t *testing.T) {
	t.Parallel()

	uc := NewDashboardUseCase(&fakeFetcher{})
	cfg, ok := uc.Endpoint("Sales-Overview")
	if !ok {
		t.Fatal("expected sales-overview endpoint")
	}
	req := cfg.RequestFromValues(url.Values{"startDate": {"2025-01-01"}, "endDate": {" "}, "secret": {"x"}})
	if len(req.Query) != 1 || req.Query["startDate"] != "2025-01-01" {
		t.Fatalf("unexpected sanitized query %v", req.Query)
	}
}

func TestDashboardFetchBuildsIdentifierPath(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{env: success(map[string]any{"revenue": 10})}
	uc := NewDashboardUseCase(fetcher)

	if _, err := uc.Fetch(context.Background(), "token", "vendor-performance", domain.AnalyticsRequest{}); !errors.Is(err, ErrMissingIdentifier) {
		t.Fatalf("expected ErrMissingIdentifier, got %v", err)
	}
	snapshot, err := uc.FetchValues(context.Background(), "token", "vendor-performance", url.Values{"vendorId": {"v 1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.path != "/api/v1/admin/analytics/vendors/v%201/performance" {
		t.Fatalf("unexpected path %q", fetcher.path)
	}
	if snapshot.Stale || snapshot.Key != "vendor-performance" {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
	if _, err := uc.Fetch(context.Background(), "token", "unknown", domain.AnalyticsRequest{}); !errors.Is(err, port.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestDashboardServesCachedPayloadOnTransportFailure(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{env: success(map[string]any{"orders": 42})}
	uc := NewDashboardUseCase(fetcher)
	request := domain.AnalyticsRequest{Query: map[string]string{"period": "week"}}

	if _, err := uc.Fetch(context.Background(), "token", "order-trend", request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetcher.env, fetcher.err = nil, domain.TransportError{Status: 503}
	snapshot, err := uc.Fetch(context.Background(), "token", "order-trend", request)
	if err != nil {
		t.Fatalf("expected cached payload, got %v", err)
	}
	if !snapshot.Stale {
		t.Fatal("expected stale marker")
	}

	if affected := uc.Invalidate("order"); len(affected) == 0 {
		t.Fatal("expected order endpoints invalidated")
	}
	if _, err := uc.Fetch(context.Background(), "token", "order-trend", request); !domain.IsTransport(err) {
		t.Fatalf("expected transport error after invalidation, got %v", err)
	}
}

func TestDashboardBusinessFailureIsNotMasked(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{env: success(map[string]any{"users": 3})}
	uc := NewDashboardUseCase(fetcher)
	if _, err := uc.Fetch(context.Background(), "token", "user-growth", domain.AnalyticsRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetcher.env = rejected(0, "Analytics disabled")
	if _, err := uc.Fetch(context.Background(), "token", "user-growth", domain.AnalyticsRequest{}); domain.UserMessage(err) != "Analytics disabled" {
		t.Fatalf("expected business message, got %v", err)
	}
}
