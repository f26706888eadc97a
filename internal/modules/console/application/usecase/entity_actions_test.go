package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	categories "adminConsole/internal/modules/categories/domain"
	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
)

func categoryList() []any {
	return []any{
		map[string]any{"id": "c1", "name": "Analgesics", "is_active": true},
		map[string]any{"id": "c2", "name": "Vitamins", "is_active": false},
		map[string]any{"id": "c3", "name": "Legacy", "is_active": true, "is_deleted": true},
	}
}

func newCategoryActions(t *testing.T, gateway *fakeGateway) (*EntityActions[categories.Category], *recordingPublisher) {
	t.Helper()
	events := &recordingPublisher{}
	container := domain.NewContainer(categories.Descriptor(), 10)
	return NewEntityActions(container, gateway, events), events
}

func loadCategories(t *testing.T, actions *EntityActions[categories.Category]) {
	t.Helper()
	if err := actions.List(context.Background(), "token"); err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
}

func TestEntityActionsListApplies(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().on("list", success(map[string]any{
		"items":      categoryList(),
		"pagination": map[string]any{"page": 1, "limit": 100, "total": 3},
	}), nil)
	actions, events := newCategoryActions(t, gateway)

	loadCategories(t, actions)

	view := actions.Container().View()
	if view.Status != domain.StatusSucceeded {
		t.Fatalf("expected succeeded, got %s", view.Status)
	}
	if view.Stats.Total() != 3 || view.Stats[categories.StatDeleted] != 1 {
		t.Fatalf("unexpected stats %v", view.Stats)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected deleted category hidden by default, got %d items", len(view.Items))
	}
	if got := events.topics(); !reflect.DeepEqual(got, []string{"categories.changed/list_loaded"}) {
		t.Fatalf("unexpected events %v", got)
	}
	if limit := gateway.calls[0].query.Limit; limit != domain.MaxItemsPerPage {
		t.Fatalf("expected full collection request, got limit %d", limit)
	}
}

func categoryPage(from, count int) []any {
	items := make([]any, 0, count)
	for i := from; i < from+count; i++ {
		items = append(items, map[string]any{"id": fmt.Sprintf("c%03d", i), "name": fmt.Sprintf("Category %d", i), "is_active": i%5 != 0})
	}
	return items
}

func pagedList(items []any, page, total, totalPages int) *domain.Envelope {
	pagination := map[string]any{"page": page, "limit": 100, "total": total}
	if totalPages > 0 {
		pagination["totalPages"] = totalPages
	}
	return success(map[string]any{"items": items, "pagination": pagination})
}

func TestEntityActionsListWalksReportedPages(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().
		onListPage(1, pagedList(categoryPage(0, 100), 1, 250, 3), nil).
		onListPage(2, pagedList(categoryPage(100, 100), 2, 250, 3), nil).
		onListPage(3, pagedList(categoryPage(200, 50), 3, 250, 3), nil)
	actions, events := newCategoryActions(t, gateway)

	loadCategories(t, actions)

	if pages := gateway.listedPages(); !reflect.DeepEqual(pages, []int{1, 2, 3}) {
		t.Fatalf("expected pages 1..3 requested, got %v", pages)
	}
	view := actions.Container().View()
	if view.Stats.Total() != 250 || view.Stats[categories.StatInactive] != 50 {
		t.Fatalf("expected stats over 250 categories, got %v", view.Stats)
	}
	if view.Filtered != 250 || view.Pagination.TotalPages != 25 || view.Remote.TotalItems != 250 {
		t.Fatalf("unexpected view totals filtered=%d pages=%d remote=%+v", view.Filtered, view.Pagination.TotalPages, view.Remote)
	}
	if _, ok := actions.Container().Find("c249"); !ok {
		t.Fatal("expected last page applied")
	}
	if got := events.topics(); !reflect.DeepEqual(got, []string{"categories.changed/list_loaded"}) {
		t.Fatalf("expected a single list event, got %v", got)
	}
}

func TestEntityActionsListDerivesPagesFromTotal(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().
		onListPage(1, pagedList(categoryPage(0, 100), 1, 150, 0), nil).
		onListPage(2, pagedList(categoryPage(100, 50), 2, 150, 0), nil)
	actions, _ := newCategoryActions(t, gateway)

	loadCategories(t, actions)

	if total := actions.Container().Stats().Total(); total != 150 {
		t.Fatalf("expected 150 categories, got %d", total)
	}
}

func TestEntityActionsListFailsWhenLaterPageFails(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().
		onListPage(1, pagedList(categoryPage(0, 100), 1, 250, 3), nil).
		onListPage(2, nil, domain.TransportError{Status: 503})
	actions, events := newCategoryActions(t, gateway)

	err := actions.List(context.Background(), "token")
	if !domain.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if pages := gateway.listedPages(); !reflect.DeepEqual(pages, []int{1, 2}) {
		t.Fatalf("expected walk to stop at page 2, got %v", pages)
	}
	view := actions.Container().View()
	if view.Status != domain.StatusFailed || view.Stats.Total() != 0 {
		t.Fatalf("expected failed list with no partial collection, got %s %v", view.Status, view.Stats)
	}
	if len(events.topics()) != 0 {
		t.Fatalf("expected no change event, got %v", events.topics())
	}
}

func TestEntityActionsListRejectsUnboundedCollections(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().onListPage(1, pagedList(categoryPage(0, 100), 1, 0, maxListPages+1), nil)
	actions, _ := newCategoryActions(t, gateway)

	if err := actions.List(context.Background(), "token"); !errors.Is(err, ErrCollectionTooLarge) {
		t.Fatalf("expected ErrCollectionTooLarge, got %v", err)
	}
	if gateway.count("list") != 1 {
		t.Fatalf("expected no further page requests, got %d", gateway.count("list"))
	}
	if status, _ := actions.Container().Status(); status != domain.StatusFailed {
		t.Fatalf("expected failed status, got %s", status)
	}
}

func TestEntityActionsListBusinessFailure(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().on("list", rejected(0, "Session expired"), nil)
	actions, events := newCategoryActions(t, gateway)

	err := actions.List(context.Background(), "token")
	if !domain.IsBusiness(err) {
		t.Fatalf("expected business error, got %v", err)
	}
	status, message := actions.Container().Status()
	if status != domain.StatusFailed || message != "Session expired" {
		t.Fatalf("unexpected status %s %q", status, message)
	}
	if len(events.topics()) != 0 {
		t.Fatalf("expected no change event, got %v", events.topics())
	}
}

func TestEntityActionsListMalformedPayload(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().on("list", success("unexpected"), nil)
	actions, _ := newCategoryActions(t, gateway)

	if err := actions.List(context.Background(), "token"); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if status, _ := actions.Container().Status(); status != domain.StatusFailed {
		t.Fatalf("expected failed status, got %s", status)
	}
}

func TestEntityActionsCreateValidationNeverReachesGateway(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	actions, _ := newCategoryActions(t, gateway)

	_, err := actions.Create(context.Background(), "token", &categories.Draft{Name: "x"})
	var validation domain.ValidationError
	if !errors.As(err, &validation) || validation.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}
	if gateway.count("create") != 0 {
		t.Fatal("expected no gateway call for invalid draft")
	}
	if status, _ := actions.Container().Status(); status != domain.StatusIdle {
		t.Fatalf("expected store untouched, got %s", status)
	}
}

func TestEntityActionsCreateBusinessFailureLeavesStore(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().
		on("list", success(categoryList()), nil).
		on("create", rejected(0, "Category name already exists"), nil)
	actions, events := newCategoryActions(t, gateway)
	loadCategories(t, actions)
	before := actions.Container().View()

	_, err := actions.Create(context.Background(), "token", &categories.Draft{Name: "Analgesics"})
	if domain.UserMessage(err) != "Category name already exists" {
		t.Fatalf("expected backend message surfaced, got %v", err)
	}
	after := actions.Container().View()
	if after.Status != before.Status || after.Error != "" || after.Stats.Total() != before.Stats.Total() {
		t.Fatalf("expected store untouched, before=%+v after=%+v", before, after)
	}
	if got := len(events.topics()); got != 1 {
		t.Fatalf("expected only the list event, got %v", events.topics())
	}
}

func TestEntityActionsCreateThenSearch(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().
		on("list", success(categoryList()), nil).
		on("create", success(map[string]any{"id": "c9", "name": "Dermatology", "is_active": true}), nil)
	actions, events := newCategoryActions(t, gateway)
	loadCategories(t, actions)

	created, err := actions.Create(context.Background(), "token", &categories.Draft{Name: "Dermatology"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "c9" {
		t.Fatalf("unexpected created id %q", created.ID)
	}

	container := actions.Container()
	if total := container.Stats().Total(); total != 4 {
		t.Fatalf("expected total 4, got %d", total)
	}
	container.SetFilters(domain.Filters{Search: "Dermatology"})
	view := container.View()
	if len(view.Items) != 1 || view.Items[0].ID != "c9" {
		t.Fatalf("expected created category found by name, got %+v", view.Items)
	}
	topics := events.topics()
	if topics[len(topics)-1] != "categories.changed/created" {
		t.Fatalf("expected created event, got %v", topics)
	}
}

func TestEntityActionsToggleStatusScenario(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().
		on("list", success(categoryList()), nil).
		on("toggle", success(map[string]any{"id": "c1", "name": "Analgesics", "is_active": false}), nil)
	actions, events := newCategoryActions(t, gateway)
	loadCategories(t, actions)

	if _, err := actions.ToggleStatus(context.Background(), "token", "c1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, ok := actions.Container().Find("c1")
	if !ok || item.IsActive {
		t.Fatalf("expected c1 inactive, got %+v", item)
	}
	stats := actions.Container().Stats()
	if stats[categories.StatActive] != 0 || stats[categories.StatInactive] != 2 {
		t.Fatalf("unexpected stats after toggle %v", stats)
	}
	topics := events.topics()
	if topics[len(topics)-1] != "categories.changed/status_toggled" {
		t.Fatalf("expected toggle to signal categories.changed, got %v", topics)
	}
}

func TestEntityActionsUpdateFallsBackToDetail(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().
		on("list", success(categoryList()), nil).
		on("update", success(nil), nil).
		on("detail", success(map[string]any{"category": map[string]any{"id": "c2", "name": "Supplements"}}), nil)
	actions, _ := newCategoryActions(t, gateway)
	loadCategories(t, actions)

	updated, err := actions.Update(context.Background(), "token", "c2", &categories.Draft{Name: "Supplements"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Supplements" || gateway.count("detail") != 1 {
		t.Fatalf("expected detail fallback, got %+v", updated)
	}
	if item, _ := actions.Container().Find("c2"); item.Name != "Supplements" {
		t.Fatalf("expected container updated, got %q", item.Name)
	}
}

func TestEntityActionsDeleteTransportFailure(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().
		on("list", success(categoryList()), nil).
		on("delete", nil, domain.TransportError{Status: 502})
	actions, _ := newCategoryActions(t, gateway)
	loadCategories(t, actions)

	if err := actions.Delete(context.Background(), "token", "c1"); !domain.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if _, ok := actions.Container().Find("c1"); !ok {
		t.Fatal("expected entity kept after failed delete")
	}
	if status, _ := actions.Container().Status(); status != domain.StatusFailed {
		t.Fatalf("expected failed status, got %s", status)
	}
}

func TestEntityActionsDeleteRemoves(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().
		on("list", success(categoryList()), nil).
		on("delete", success(nil), nil)
	actions, _ := newCategoryActions(t, gateway)
	loadCategories(t, actions)

	if err := actions.Delete(context.Background(), "token", "c2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total := actions.Container().Stats().Total(); total != 2 {
		t.Fatalf("expected total 2 after delete, got %d", total)
	}
}

func TestEntityActionsDiscardsResponseAfterReset(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().on("list", success(categoryList()), nil)
	actions, events := newCategoryActions(t, gateway)
	gateway.before("list", actions.Container().Reset)

	err := actions.List(context.Background(), "token")
	if !errors.Is(err, domain.ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
	view := actions.Container().View()
	if view.Status != domain.StatusIdle || view.Stats.Total() != 0 {
		t.Fatalf("expected reset state kept, got %+v", view)
	}
	if len(events.topics()) != 0 {
		t.Fatalf("expected no change event for discarded response, got %v", events.topics())
	}
}

func TestEntityActionsUnsupportedOperation(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway().on("list", success(categoryList()), nil)
	actions, _ := newCategoryActions(t, gateway)
	loadCategories(t, actions)

	if _, err := actions.Restore(context.Background(), "token", "c3"); !errors.Is(err, port.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if status, _ := actions.Container().Status(); status != domain.StatusSucceeded {
		t.Fatalf("expected status untouched, got %s", status)
	}
}
