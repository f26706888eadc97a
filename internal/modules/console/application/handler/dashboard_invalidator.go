package handler

import (
	"context"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/application/usecase"
	"adminConsole/internal/modules/console/domain"
)

// DashboardInvalidator drops the cached dashboard payloads that depend on entity, so a
// later outage never serves figures older than a known change.
type DashboardInvalidator struct {
	entity    string
	dashboard *usecase.DashboardUseCase
}

func NewDashboardInvalidator(entity string, dashboard *usecase.DashboardUseCase) *DashboardInvalidator {
	return &DashboardInvalidator{entity: entity, dashboard: dashboard}
}

func (h *DashboardInvalidator) Topic() string { return domain.ChangedTopic(h.entity) }

func (h *DashboardInvalidator) Handle(_ context.Context, _ *domain.Message) error {
	h.dashboard.Invalidate(h.entity)
	return nil
}

var _ port.TopicHandler = (*DashboardInvalidator)(nil)
