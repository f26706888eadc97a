package domain

import (
	"errors"
	"strconv"
	"testing"
)

type widget struct {
	ID      string
	Name    string
	Kind    string
	Active  bool
	Deleted bool
}

func (w widget) EntityID() string { return w.ID }

func widgetDescriptor() Descriptor[widget] {
	return Descriptor[widget]{
		Entity: "widgets",
		Predicate: func(item widget, filters Filters) bool {
			if !MatchValue(filters.Value("kind"), item.Kind) {
				return false
			}
			if deleted, set := filters.Flag("include_deleted"); set && deleted {
				return item.Deleted
			}
			if item.Deleted {
				return false
			}
			return MatchFlag(filters, "is_active", item.Active)
		},
		SearchFields: func(item widget) []string { return []string{item.Name} },
		Stats: func(all []widget) Stats {
			return CountStats(all, map[string]func(widget) bool{
				"active":   func(w widget) bool { return w.Active && !w.Deleted },
				"inactive": func(w widget) bool { return !w.Active && !w.Deleted },
				"deleted":  func(w widget) bool { return w.Deleted },
			})
		},
	}
}

func widgets(n int) []widget {
	items := make([]widget, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, widget{ID: strconv.Itoa(i), Name: "Widget " + strconv.Itoa(i), Kind: "basic", Active: i%2 == 0})
	}
	return items
}

func loaded(t *testing.T, items []widget) *Container[widget] {
	t.Helper()
	c := NewContainer(widgetDescriptor(), 10)
	tok := c.ListRequested()
	if err := c.ListSucceeded(tok, items, RemotePage{}, nil); err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	return c
}

func TestContainerStatsIgnoreFilters(t *testing.T) {
	t.Parallel()

	items := widgets(6)
	items[0].Deleted = true
	c := loaded(t, items)

	before := c.Stats()
	c.SetFilters(Filters{}.WithFlag("is_active", true).WithSearch("widget 2"))
	after := c.Stats()

	if after.Total() != 6 || before.Total() != 6 {
		t.Fatalf("expected total 6, got before=%d after=%d", before.Total(), after.Total())
	}
	for key, value := range before {
		if after[key] != value {
			t.Fatalf("stat %s changed with filters: %d -> %d", key, value, after[key])
		}
	}
	if got := len(c.Filtered()); got != 1 {
		t.Fatalf("expected one filtered item, got %d", got)
	}
	if before["deleted"] != 1 || before["active"] != 3 || before["inactive"] != 2 {
		t.Fatalf("unexpected stats: %v", before)
	}
}

func TestContainerPaginationTotals(t *testing.T) {
	t.Parallel()

	cases := []struct {
		count int
		pages int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{25, 3},
	}
	for _, tc := range cases {
		c := loaded(t, widgets(tc.count))
		page := c.Pagination()
		if page.TotalPages != tc.pages {
			t.Fatalf("count %d: expected %d pages, got %d", tc.count, tc.pages, page.TotalPages)
		}
		if page.TotalItems != tc.count {
			t.Fatalf("count %d: expected totalItems %d, got %d", tc.count, tc.count, page.TotalItems)
		}
	}
}

func TestContainerPageNavigation(t *testing.T) {
	t.Parallel()

	c := loaded(t, widgets(25))
	if err := c.GoToPage(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(c.View().Items); got != 5 {
		t.Fatalf("expected 5 items on last page, got %d", got)
	}

	for _, page := range []int{0, 4, -1} {
		if err := c.GoToPage(page); !errors.Is(err, ErrPageOutOfRange) {
			t.Fatalf("page %d: expected ErrPageOutOfRange, got %v", page, err)
		}
		if current := c.Pagination().CurrentPage; current != 3 {
			t.Fatalf("page %d: expected page to stay 3, got %d", page, current)
		}
	}

	if err := c.SetItemsPerPage(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := c.Pagination()
	if page.CurrentPage != 1 || page.TotalPages != 5 {
		t.Fatalf("expected page 1 of 5 after resize, got %+v", page)
	}
	if err := c.SetItemsPerPage(0); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
}

func TestContainerFilterChangeResetsPage(t *testing.T) {
	t.Parallel()

	c := loaded(t, widgets(30))
	if err := c.GoToPage(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.UpdateFilters(func(f Filters) Filters { return f.WithValue("kind", "basic") })
	if current := c.Pagination().CurrentPage; current != 1 {
		t.Fatalf("expected page reset to 1, got %d", current)
	}
}

func TestContainerShrinkClampsCurrentPage(t *testing.T) {
	t.Parallel()

	c := loaded(t, widgets(11))
	if err := c.GoToPage(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tok := c.BeginMutation("11")
	if err := c.DeleteSucceeded(tok, "11"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := c.Pagination()
	if page.CurrentPage != 1 || page.TotalPages != 1 {
		t.Fatalf("expected clamp to page 1 of 1, got %+v", page)
	}
}

func TestContainerMutations(t *testing.T) {
	t.Parallel()

	c := loaded(t, widgets(3))
	if !c.Select("2") {
		t.Fatal("expected select to succeed")
	}
	if c.Deselect("1") {
		t.Fatal("expected deselect of another entity to be refused")
	}
	if !c.Deselect("2") {
		t.Fatal("expected deselect to succeed")
	}
	if _, ok := c.Selected(); ok {
		t.Fatal("expected no selection after deselect")
	}
	c.Select("2")

	create := c.BeginMutation("")
	if err := c.CreateSucceeded(create, widget{ID: "9", Name: "Fresh", Active: true}); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if first := c.Items()[0]; first.ID != "9" {
		t.Fatalf("expected created item first, got %s", first.ID)
	}
	if total := c.Stats().Total(); total != 4 {
		t.Fatalf("expected total 4, got %d", total)
	}

	update := c.BeginMutation("2")
	if err := c.UpdateSucceeded(update, "2", widget{ID: "2", Name: "Renamed"}); err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	selected, ok := c.Selected()
	if !ok || selected.Name != "Renamed" {
		t.Fatalf("expected selected entity to follow update, got %+v", selected)
	}

	del := c.BeginMutation("2")
	if err := c.DeleteSucceeded(del, "2"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, ok := c.Selected(); ok {
		t.Fatal("expected selection cleared after delete")
	}
	if _, ok := c.Find("2"); ok {
		t.Fatal("expected entity removed")
	}
	if status, _ := c.Status(); status != StatusSucceeded {
		t.Fatalf("expected succeeded status, got %s", status)
	}
}

func TestContainerMutationFailureKeepsData(t *testing.T) {
	t.Parallel()

	c := loaded(t, widgets(3))
	before := c.All()

	tok := c.BeginMutation("1")
	if err := c.MutationFailed(tok, "Category name already exists"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status, message := c.Status()
	if status != StatusFailed || message != "Category name already exists" {
		t.Fatalf("unexpected status %s %q", status, message)
	}
	after := c.All()
	if len(after) != len(before) {
		t.Fatalf("expected collection untouched, got %d items", len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("item %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestContainerDiscardsStaleResponses(t *testing.T) {
	t.Parallel()

	c := NewContainer(widgetDescriptor(), 10)
	first := c.ListRequested()
	second := c.ListRequested()

	if err := c.ListSucceeded(second, widgets(2), RemotePage{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.ListSucceeded(first, widgets(5), RemotePage{}, nil); !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
	if total := c.Stats().Total(); total != 2 {
		t.Fatalf("expected newer response to win, got total %d", total)
	}

	older := c.BeginMutation("1")
	newer := c.BeginMutation("1")
	if err := c.UpdateSucceeded(newer, "1", widget{ID: "1", Name: "newer"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.UpdateSucceeded(older, "1", widget{ID: "1", Name: "older"}); !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
	if item, _ := c.Find("1"); item.Name != "newer" {
		t.Fatalf("expected newer update to win, got %q", item.Name)
	}

	createA := c.BeginMutation("")
	createB := c.BeginMutation("")
	if err := c.CreateSucceeded(createB, widget{ID: "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.CreateSucceeded(createA, widget{ID: "a"}); err != nil {
		t.Fatalf("independent creates must both apply, got %v", err)
	}
}

func TestContainerResetDiscardsInFlight(t *testing.T) {
	t.Parallel()

	c := loaded(t, widgets(4))
	c.SetFilters(Filters{Search: "widget"})
	pending := c.ListRequested()
	var actions []string
	c.OnChange(func(change Change) { actions = append(actions, change.Action) })

	c.Reset()

	if err := c.ListSucceeded(pending, widgets(8), RemotePage{}, nil); !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse after reset, got %v", err)
	}
	view := c.View()
	if view.Status != StatusIdle || len(view.Items) != 0 || view.Stats.Total() != 0 {
		t.Fatalf("expected empty idle container, got %+v", view)
	}
	if !view.Filters.IsZero() || view.Pagination.CurrentPage != 1 || view.Pagination.TotalPages != 1 {
		t.Fatalf("expected initial filters and pagination, got %+v %+v", view.Filters, view.Pagination)
	}
	if len(actions) != 1 || actions[0] != ActionReset {
		t.Fatalf("expected single reset notification, got %v", actions)
	}
}

func TestContainerUsesSeparateShadowCollection(t *testing.T) {
	t.Parallel()

	c := NewContainer(widgetDescriptor(), 2)
	tok := c.ListRequested()
	page := widgets(2)
	all := widgets(7)
	if err := c.ListSucceeded(tok, page, RemotePage{Page: 1, Limit: 2, TotalItems: 7}, all); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view := c.View()
	if view.Stats.Total() != 7 {
		t.Fatalf("expected stats over shadow collection, got %d", view.Stats.Total())
	}
	if view.Remote.TotalPages != 4 {
		t.Fatalf("expected 4 remote pages, got %d", view.Remote.TotalPages)
	}
	if len(c.Items()) != 2 {
		t.Fatalf("expected page items kept, got %d", len(c.Items()))
	}
}

func TestContainerReleaseLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	c := loaded(t, widgets(2))
	var actions []string
	c.OnChange(func(change Change) { actions = append(actions, change.Action) })

	tok := c.BeginMutation("1")
	if err := c.Release(tok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status, message := c.Status(); status != StatusSucceeded || message != "" {
		t.Fatalf("expected status untouched, got %s %q", status, message)
	}
	if len(actions) != 0 {
		t.Fatalf("expected no notifications, got %v", actions)
	}
	if err := c.Release(tok); !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected released token to be stale, got %v", err)
	}
}

func TestContainerDetailSelectsAndRefreshes(t *testing.T) {
	t.Parallel()

	c := loaded(t, widgets(3))
	older := c.BeginDetail("3")
	newer := c.BeginDetail("3")
	if err := c.DetailSucceeded(newer, widget{ID: "3", Name: "Detailed", Active: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.DetailSucceeded(older, widget{ID: "3", Name: "Old"}); !errors.Is(err, ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
	selected, ok := c.Selected()
	if !ok || selected.Name != "Detailed" {
		t.Fatalf("expected detail selected, got %+v", selected)
	}
	if item, _ := c.Find("3"); item.Name != "Detailed" {
		t.Fatalf("expected held copy refreshed, got %q", item.Name)
	}
}
