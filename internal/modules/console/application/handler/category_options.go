package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
)

// CategoryOptionsRefresher keeps the product domain's available categories in step with
// the category domain. It listens to "categories.changed" only; product changes never
// flow back to categories.
type CategoryOptionsRefresher struct {
	source  port.CategorySource
	options *domain.OptionSet
	now     func() time.Time
}

func NewCategoryOptionsRefresher(source port.CategorySource, options *domain.OptionSet) *CategoryOptionsRefresher {
	return &CategoryOptionsRefresher{source: source, options: options, now: time.Now}
}

func (h *CategoryOptionsRefresher) Topic() string { return domain.ChangedTopic("categories") }

func (h *CategoryOptionsRefresher) Handle(ctx context.Context, msg *domain.Message) error {
	options, err := h.source.ActiveCategories(ctx)
	if err != nil {
		return fmt.Errorf("refresh product categories: %w", err)
	}
	h.options.Replace(options, h.now())
	slog.Debug("product categories refreshed", slog.Int("count", len(options)), slog.String("trigger", msg.Action))
	return nil
}

var _ port.TopicHandler = (*CategoryOptionsRefresher)(nil)
