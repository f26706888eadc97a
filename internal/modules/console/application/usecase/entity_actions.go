package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/logging"
)

// EntityActions runs the request lifecycle of one entity domain: it marks the container
// as pending, calls the gateway, checks the envelope and applies the outcome. Every call
// is one-shot; nothing is retried or coalesced.
type EntityActions[T domain.Entity] struct {
	container *domain.Container[T]
	gateway   port.Gateway
	events    port.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewEntityActions[T domain.Entity](container *domain.Container[T], gateway port.Gateway, events port.EventPublisher) *EntityActions[T] {
	return &EntityActions[T]{
		container: container,
		gateway:   gateway,
		events:    events,
		logger:    logging.Component("entity_actions").With(slog.String("entity", container.Entity())),
		now:       time.Now,
	}
}

func (a *EntityActions[T]) Container() *domain.Container[T] { return a.container }

func (a *EntityActions[T]) entity() string { return a.container.Entity() }

// maxListPages bounds the pages a single list walks before giving up.
const maxListPages = 1000

// ErrCollectionTooLarge is returned when the backend reports more pages than a list
// is allowed to walk.
var ErrCollectionTooLarge = errors.New("collection exceeds the console list limit")

// List replaces the collection with the backend's list. Filtering and paging happen on
// the complete collection held by the container, so the request asks for the largest
// page the backend allows and walks the remaining pages the backend reports. Every page
// is fetched under the same list token.
func (a *EntityActions[T]) List(ctx context.Context, token string) error {
	tok := a.container.ListRequested()
	query := domain.PagedQuery{Page: 1, Limit: domain.MaxItemsPerPage}.Normalize()

	env, err := a.gateway.List(ctx, token, a.entity(), query)
	if err == nil {
		err = env.Err()
	}
	if err != nil {
		return a.listFailed(tok, err)
	}

	items, err := a.decodeList(env)
	if err != nil {
		return a.listFailed(tok, err)
	}
	remote := env.Page()
	if remote.Limit > 0 {
		// later pages must use the page size the backend actually applied
		query.Limit = remote.Limit
	}
	var all []T
	if records, ok := env.AllRecords(); ok {
		all = a.decodeRecords(records)
	} else if pages := remotePageCount(remote, query.Limit, len(items)); pages > 1 {
		all, err = a.collectPages(ctx, token, tok, query, items, pages)
		if err != nil {
			return a.listFailed(tok, err)
		}
		remote.Page = 1
	}

	if err := a.container.ListSucceeded(tok, items, remote, all); err != nil {
		return a.discarded(tok, err)
	}
	a.logger.Debug("list applied", slog.Int("count", len(items)), slog.Int("total", len(all)), slog.Uint64("generation", tok.Generation()))
	a.publish(ctx, domain.ActionListLoaded, "", nil)
	return nil
}

// collectPages fetches pages 2..pages and returns them appended to first. It stops early
// when the token is superseded or a page comes back empty.
func (a *EntityActions[T]) collectPages(ctx context.Context, token string, tok domain.Token, query domain.PagedQuery, first []T, pages int) ([]T, error) {
	if pages > maxListPages {
		return nil, fmt.Errorf("%s reports %d pages: %w", a.entity(), pages, ErrCollectionTooLarge)
	}
	all := make([]T, 0, pages*query.Limit)
	all = append(all, first...)
	for page := 2; page <= pages; page++ {
		if !a.container.Current(tok) {
			return nil, domain.ErrStaleResponse
		}
		query.Page = page
		env, err := a.gateway.List(ctx, token, a.entity(), query)
		if err == nil {
			err = env.Err()
		}
		if err != nil {
			return nil, fmt.Errorf("list %s page %d: %w", a.entity(), page, err)
		}
		items, err := a.decodeList(env)
		if err != nil {
			return nil, fmt.Errorf("list %s page %d: %w", a.entity(), page, err)
		}
		if len(items) == 0 {
			break
		}
		all = append(all, items...)
	}
	a.logger.Debug("list pages collected", slog.Int("pages", pages), slog.Int("count", len(all)))
	return all, nil
}

func (a *EntityActions[T]) listFailed(tok domain.Token, err error) error {
	if errors.Is(err, domain.ErrStaleResponse) {
		return a.discarded(tok, err)
	}
	a.logger.Warn("list failed", slog.Uint64("generation", tok.Generation()), slog.Any("error", err))
	if applyErr := a.container.ListFailed(tok, domain.UserMessage(err)); applyErr != nil {
		return a.discarded(tok, applyErr)
	}
	return err
}

// remotePageCount returns how many pages of limit items the backend holds, from its
// reported page count or, failing that, its reported total.
func remotePageCount(remote domain.RemotePage, limit, received int) int {
	if remote.TotalPages > 0 {
		return remote.TotalPages
	}
	if remote.TotalItems > received {
		return domain.TotalPagesFor(remote.TotalItems, limit)
	}
	return 1
}

// Get fetches one entity and selects it.
func (a *EntityActions[T]) Get(ctx context.Context, token, id string) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, domain.ValidationError{Field: "id", Msg: "is required"}
	}
	tok := a.container.BeginDetail(id)
	item, err := a.fetchDetail(ctx, token, id)
	if err != nil {
		_ = a.container.Release(tok)
		return zero, err
	}
	if err := a.container.DetailSucceeded(tok, item); err != nil {
		return zero, a.discarded(tok, err)
	}
	return item, nil
}

// Create validates draft locally and, when valid, posts it. The created entity is
// prepended to the collection.
func (a *EntityActions[T]) Create(ctx context.Context, token string, draft domain.Draft) (T, error) {
	var zero T
	if err := draft.Validate(); err != nil {
		return zero, err
	}
	tok := a.container.BeginMutation("")
	env, err := a.gateway.Create(ctx, token, a.entity(), draft.Payload())
	if err := a.settle(tok, env, err); err != nil {
		return zero, err
	}
	item, ok := a.decodeRecord(env)
	if !ok {
		return zero, a.malformed(tok)
	}
	if err := a.container.CreateSucceeded(tok, item); err != nil {
		return zero, a.discarded(tok, err)
	}
	a.logger.Info("entity created", slog.String("id", item.EntityID()))
	a.publish(ctx, domain.ActionCreated, item.EntityID(), item)
	return item, nil
}

// Update validates draft locally and replaces the entity with the backend's version.
func (a *EntityActions[T]) Update(ctx context.Context, token, id string, draft domain.Draft) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, domain.ValidationError{Field: "id", Msg: "is required"}
	}
	if err := draft.Validate(); err != nil {
		return zero, err
	}
	tok := a.container.BeginMutation(id)
	env, err := a.gateway.Update(ctx, token, a.entity(), id, draft.Payload())
	if err := a.settle(tok, env, err); err != nil {
		return zero, err
	}
	item, err := a.recordOrDetail(ctx, token, id, env)
	if err != nil {
		_ = a.container.MutationFailed(tok, domain.UserMessage(err))
		return zero, err
	}
	if err := a.container.UpdateSucceeded(tok, id, item); err != nil {
		return zero, a.discarded(tok, err)
	}
	a.logger.Info("entity updated", slog.String("id", id))
	a.publish(ctx, domain.ActionUpdated, id, item)
	return item, nil
}

// ToggleStatus calls the domain's dedicated status endpoint. payload carries the
// target status for domains whose endpoint needs one and may be nil otherwise.
func (a *EntityActions[T]) ToggleStatus(ctx context.Context, token, id string, payload map[string]any) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, domain.ValidationError{Field: "id", Msg: "is required"}
	}
	tok := a.container.BeginMutation(id)
	env, err := a.gateway.ToggleStatus(ctx, token, a.entity(), id, payload)
	if err := a.settle(tok, env, err); err != nil {
		return zero, err
	}
	item, err := a.recordOrDetail(ctx, token, id, env)
	if err != nil {
		_ = a.container.MutationFailed(tok, domain.UserMessage(err))
		return zero, err
	}
	if err := a.container.ToggleStatusSucceeded(tok, id, item); err != nil {
		return zero, a.discarded(tok, err)
	}
	a.logger.Info("entity status toggled", slog.String("id", id))
	a.publish(ctx, domain.ActionStatusToggled, id, item)
	return item, nil
}

// Restore brings a soft-deleted entity back.
func (a *EntityActions[T]) Restore(ctx context.Context, token, id string) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, domain.ValidationError{Field: "id", Msg: "is required"}
	}
	tok := a.container.BeginMutation(id)
	env, err := a.gateway.Restore(ctx, token, a.entity(), id)
	if err := a.settle(tok, env, err); err != nil {
		return zero, err
	}
	item, err := a.recordOrDetail(ctx, token, id, env)
	if err != nil {
		_ = a.container.MutationFailed(tok, domain.UserMessage(err))
		return zero, err
	}
	if err := a.container.RestoreSucceeded(tok, id, item); err != nil {
		return zero, a.discarded(tok, err)
	}
	a.logger.Info("entity restored", slog.String("id", id))
	a.publish(ctx, domain.ActionRestored, id, item)
	return item, nil
}

// Delete removes the entity from the collection once the backend confirms.
func (a *EntityActions[T]) Delete(ctx context.Context, token, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ValidationError{Field: "id", Msg: "is required"}
	}
	tok := a.container.BeginMutation(id)
	env, err := a.gateway.Delete(ctx, token, a.entity(), id)
	if err := a.settle(tok, env, err); err != nil {
		return err
	}
	if err := a.container.DeleteSucceeded(tok, id); err != nil {
		return a.discarded(tok, err)
	}
	a.logger.Info("entity deleted", slog.String("id", id))
	a.publish(ctx, domain.ActionDeleted, id, nil)
	return nil
}

// settle classifies the outcome of a write. Transport failures mark the container as
// failed; business rejections leave it untouched and only surface the backend message.
func (a *EntityActions[T]) settle(tok domain.Token, env *domain.Envelope, err error) error {
	if errors.Is(err, port.ErrUnsupported) {
		_ = a.container.Release(tok)
		return err
	}
	if err != nil {
		a.logger.Warn("mutation transport failure", slog.Uint64("generation", tok.Generation()), slog.Any("error", err))
		if applyErr := a.container.MutationFailed(tok, domain.UserMessage(err)); applyErr != nil {
			return a.discarded(tok, applyErr)
		}
		return err
	}
	if businessErr := env.Err(); businessErr != nil {
		a.logger.Info("mutation rejected", slog.Uint64("generation", tok.Generation()), slog.String("message", domain.UserMessage(businessErr)))
		if applyErr := a.container.Release(tok); applyErr != nil {
			return a.discarded(tok, applyErr)
		}
		return businessErr
	}
	return nil
}

func (a *EntityActions[T]) malformed(tok domain.Token) error {
	if err := a.container.MutationFailed(tok, domain.ErrMalformedResponse.Error()); err != nil {
		return a.discarded(tok, err)
	}
	return domain.ErrMalformedResponse
}

func (a *EntityActions[T]) discarded(tok domain.Token, err error) error {
	if errors.Is(err, domain.ErrStaleResponse) {
		a.logger.Debug("response discarded", slog.Uint64("generation", tok.Generation()))
	}
	return err
}

func (a *EntityActions[T]) recordOrDetail(ctx context.Context, token, id string, env *domain.Envelope) (T, error) {
	if item, ok := a.decodeRecord(env); ok {
		return item, nil
	}
	a.logger.Debug("response without record, fetching detail", slog.String("id", id))
	return a.fetchDetail(ctx, token, id)
}

func (a *EntityActions[T]) fetchDetail(ctx context.Context, token, id string) (T, error) {
	var zero T
	env, err := a.gateway.Detail(ctx, token, a.entity(), id)
	if err != nil {
		return zero, fmt.Errorf("fetch %s %s: %w", a.entity(), id, err)
	}
	if err := env.Err(); err != nil {
		return zero, err
	}
	item, ok := a.decodeRecord(env)
	if !ok {
		return zero, domain.ErrMalformedResponse
	}
	return item, nil
}

func (a *EntityActions[T]) decodeList(env *domain.Envelope) ([]T, error) {
	if env.Response == nil {
		return []T{}, nil
	}
	records := env.Records(a.entity())
	if records == nil {
		return nil, domain.ErrMalformedResponse
	}
	return a.decodeRecords(records), nil
}

func (a *EntityActions[T]) decodeRecords(records []map[string]any) []T {
	decode := a.container.Descriptor().Decode
	items := make([]T, 0, len(records))
	for _, record := range records {
		item, ok := decode(record)
		if !ok {
			a.logger.Debug("record skipped without identifier")
			continue
		}
		items = append(items, item)
	}
	return items
}

func (a *EntityActions[T]) decodeRecord(env *domain.Envelope) (T, bool) {
	var zero T
	record := env.Record("data", "item", singular(a.entity()))
	if record == nil {
		return zero, false
	}
	return a.container.Descriptor().Decode(record)
}

func (a *EntityActions[T]) publish(ctx context.Context, action, resourceID string, data any) {
	if a.events == nil {
		return
	}
	a.events.Publish(ctx, domain.NewChangeMessage(a.entity(), action, resourceID, nil, data, a.now()))
}

func singular(entity string) string {
	switch {
	case strings.HasSuffix(entity, "ies"):
		return strings.TrimSuffix(entity, "ies") + "y"
	case strings.HasSuffix(entity, "sses"):
		return strings.TrimSuffix(entity, "es")
	default:
		return strings.TrimSuffix(entity, "s")
	}
}
