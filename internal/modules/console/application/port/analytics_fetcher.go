package port

import (
	"context"

	"adminConsole/internal/modules/console/domain"
)

// AnalyticsFetcher retrieves dashboard payloads from the REST API.
type AnalyticsFetcher interface {
	Fetch(ctx context.Context, token, path string, query map[string]string) (*domain.Envelope, error)
}
