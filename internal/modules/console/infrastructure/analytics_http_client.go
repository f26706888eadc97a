package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
)

// AnalyticsHTTPClient implements AnalyticsFetcher by calling the REST analytics endpoints.
type AnalyticsHTTPClient struct {
	rest *RESTClient
}

func NewAnalyticsHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *AnalyticsHTTPClient {
	return &AnalyticsHTTPClient{rest: NewRESTClient(baseURL, timeout, client)}
}

func (c *AnalyticsHTTPClient) Fetch(ctx context.Context, token, path string, query map[string]string) (*domain.Envelope, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return nil, fmt.Errorf("analytics fetch missing path")
	}

	values := url.Values{}
	for key, value := range query {
		trimmedKey := strings.TrimSpace(key)
		trimmedValue := strings.TrimSpace(value)
		if trimmedKey == "" || trimmedValue == "" {
			continue
		}
		values.Set(trimmedKey, trimmedValue)
	}
	return c.rest.Envelope(ctx, token, http.MethodGet, trimmedPath, values, nil)
}

var _ port.AnalyticsFetcher = (*AnalyticsHTTPClient)(nil)
