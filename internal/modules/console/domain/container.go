package domain

import (
	"strings"
	"sync"
	"time"
)

// Change describes a state transition of a container.
type Change struct {
	Entity     string
	Action     string
	ResourceID string
	At         time.Time
}

// ChangeFunc observes container transitions. It is invoked after the lock is released.
type ChangeFunc func(Change)

// View is a read-only snapshot of a container.
type View[T Entity] struct {
	Entity     string     `json:"entity"`
	Status     Status     `json:"status"`
	Error      string     `json:"error,omitempty"`
	Items      []T        `json:"items"`
	Filtered   int        `json:"filteredCount"`
	Pagination Pagination `json:"pagination"`
	Remote     RemotePage `json:"remote"`
	Filters    Filters    `json:"filters"`
	Stats      Stats      `json:"stats"`
	Selected   *T         `json:"selected,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Container is the state of one entity domain: the last fetched page, the complete
// collection used for stats and client-side filtering, the filter and page window, the
// selected entity and the request status.
//
// Stats are always derived from the complete collection, never from the filtered view.
// Responses are applied only when their Token is still current.
type Container[T Entity] struct {
	mu sync.RWMutex

	desc     Descriptor[T]
	pageSize int
	now      func() time.Time
	tokens   *tokenLedger
	watchers []ChangeFunc

	status    Status
	lastError string
	items     []T
	all       []T
	filtered  []T
	selected  *T
	filters   Filters
	page      Pagination
	remote    RemotePage
	stats     Stats
	updatedAt time.Time
}

// NewContainer returns an empty container. pageSize outside [1, MaxItemsPerPage] falls
// back to DefaultItemsPerPage.
func NewContainer[T Entity](desc Descriptor[T], pageSize int) *Container[T] {
	if pageSize <= 0 || pageSize > MaxItemsPerPage {
		pageSize = DefaultItemsPerPage
	}
	c := &Container[T]{
		desc:     desc,
		pageSize: pageSize,
		now:      time.Now,
		tokens:   newTokenLedger(),
	}
	c.resetLocked()
	return c
}

func (c *Container[T]) Entity() string { return c.desc.Entity }

func (c *Container[T]) Descriptor() Descriptor[T] { return c.desc }

// OnChange registers fn for every subsequent transition.
func (c *Container[T]) OnChange(fn ChangeFunc) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.watchers = append(c.watchers, fn)
	c.mu.Unlock()
}

// ListRequested marks the container as loading and returns the token the response
// must present.
func (c *Container[T]) ListRequested() Token {
	c.mu.Lock()
	tok := c.tokens.begin(listTokenKey)
	c.status = StatusLoading
	c.lastError = ""
	c.mu.Unlock()

	c.notify(ActionListRequested, "")
	return tok
}

// ListSucceeded replaces the current page with items. all replaces the complete
// collection when non-nil; otherwise items doubles as the complete collection.
func (c *Container[T]) ListSucceeded(tok Token, items []T, remote RemotePage, all []T) error {
	c.mu.Lock()
	if !c.tokens.current(tok) {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	c.tokens.finish(tok)

	c.items = cloneSlice(items)
	if all != nil {
		c.all = cloneSlice(all)
	} else {
		c.all = cloneSlice(items)
	}
	if remote.Limit <= 0 {
		remote.Limit = c.page.ItemsPerPage
	}
	if remote.Page <= 0 {
		remote.Page = 1
	}
	if remote.TotalItems < len(c.items) {
		remote.TotalItems = len(c.items)
	}
	if remote.TotalPages <= 0 {
		remote.TotalPages = TotalPagesFor(remote.TotalItems, remote.Limit)
	}
	c.remote = remote
	c.status = StatusSucceeded
	c.lastError = ""
	if c.selected != nil {
		id := (*c.selected).EntityID()
		if index := indexByID(c.all, id); index >= 0 {
			refreshed := c.all[index]
			c.selected = &refreshed
		}
	}
	c.recomputeLocked()
	c.mu.Unlock()

	c.notify(ActionListLoaded, "")
	return nil
}

// Current reports whether tok is still the outstanding token of its request.
func (c *Container[T]) Current(tok Token) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens.current(tok)
}

// ListFailed records a failed list request. Collections are left untouched.
func (c *Container[T]) ListFailed(tok Token, message string) error {
	c.mu.Lock()
	if !c.tokens.current(tok) {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	c.tokens.finish(tok)
	c.status = StatusFailed
	c.lastError = strings.TrimSpace(message)
	c.updatedAt = c.now().UTC()
	c.mu.Unlock()

	c.notify(ActionListFailed, "")
	return nil
}

// BeginMutation issues a token for a write against id. Issuing a new token for the same
// id supersedes the previous one. An empty id issues a create token that nothing
// supersedes.
func (c *Container[T]) BeginMutation(id string) Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	id = strings.TrimSpace(id)
	if id == "" {
		return c.tokens.beginUnique("create")
	}
	return c.tokens.begin(mutationKey(id))
}

// CreateSucceeded prepends item to the page and to the complete collection. An item
// whose id is already present replaces the existing entry instead.
func (c *Container[T]) CreateSucceeded(tok Token, item T) error {
	c.mu.Lock()
	if !c.tokens.current(tok) {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	c.tokens.finish(tok)

	id := item.EntityID()
	inPage := replaceByID(c.items, id, item)
	inAll := replaceByID(c.all, id, item)
	if !inPage {
		c.items = prepend(c.items, item)
	}
	if !inAll {
		c.all = prepend(c.all, item)
		c.remote.TotalItems++
		c.remote.TotalPages = TotalPagesFor(c.remote.TotalItems, c.remote.Limit)
	}
	c.mutationAppliedLocked()
	c.mu.Unlock()

	c.notify(ActionCreated, id)
	return nil
}

// UpdateSucceeded replaces the entity with the given id everywhere it is held, including
// the selected reference.
func (c *Container[T]) UpdateSucceeded(tok Token, id string, item T) error {
	return c.replace(tok, id, item, ActionUpdated)
}

// ToggleStatusSucceeded applies the entity returned by a status toggle.
func (c *Container[T]) ToggleStatusSucceeded(tok Token, id string, item T) error {
	return c.replace(tok, id, item, ActionStatusToggled)
}

// RestoreSucceeded applies the entity returned by a restore of a soft-deleted record.
func (c *Container[T]) RestoreSucceeded(tok Token, id string, item T) error {
	return c.replace(tok, id, item, ActionRestored)
}

func (c *Container[T]) replace(tok Token, id string, item T, action string) error {
	c.mu.Lock()
	if !c.tokens.current(tok) {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	c.tokens.finish(tok)

	id = strings.TrimSpace(id)
	if id == "" {
		id = item.EntityID()
	}
	replaceByID(c.items, id, item)
	replaceByID(c.all, id, item)
	if c.selected != nil && (*c.selected).EntityID() == id {
		selected := item
		c.selected = &selected
	}
	c.mutationAppliedLocked()
	c.mu.Unlock()

	c.notify(action, id)
	return nil
}

// DeleteSucceeded removes the entity from the page and the complete collection.
func (c *Container[T]) DeleteSucceeded(tok Token, id string) error {
	c.mu.Lock()
	if !c.tokens.current(tok) {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	c.tokens.finish(tok)

	id = strings.TrimSpace(id)
	var removedFromPage, removedFromAll bool
	c.items, removedFromPage = removeByID(c.items, id)
	c.all, removedFromAll = removeByID(c.all, id)
	if (removedFromPage || removedFromAll) && c.remote.TotalItems > 0 {
		c.remote.TotalItems--
		c.remote.TotalPages = TotalPagesFor(c.remote.TotalItems, c.remote.Limit)
	}
	if c.selected != nil && (*c.selected).EntityID() == id {
		c.selected = nil
	}
	c.mutationAppliedLocked()
	c.mu.Unlock()

	c.notify(ActionDeleted, id)
	return nil
}

// MutationFailed records a failed write. Collections are left untouched.
func (c *Container[T]) MutationFailed(tok Token, message string) error {
	c.mu.Lock()
	if !c.tokens.current(tok) {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	c.tokens.finish(tok)
	c.status = StatusFailed
	c.lastError = strings.TrimSpace(message)
	c.updatedAt = c.now().UTC()
	c.mu.Unlock()

	c.notify(ActionMutationFailed, "")
	return nil
}

// Release retires tok without touching the state. A business rejection uses it so the
// store is left exactly as it was before the request.
func (c *Container[T]) Release(tok Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.tokens.current(tok) {
		return ErrStaleResponse
	}
	c.tokens.finish(tok)
	return nil
}

// BeginDetail issues a token for a detail fetch of id.
func (c *Container[T]) BeginDetail(id string) Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens.begin(detailKey(strings.TrimSpace(id)))
}

// DetailSucceeded stores item as the selected entity and refreshes the held copies.
func (c *Container[T]) DetailSucceeded(tok Token, item T) error {
	c.mu.Lock()
	if !c.tokens.current(tok) {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	c.tokens.finish(tok)

	id := item.EntityID()
	inPage := replaceByID(c.items, id, item)
	inAll := replaceByID(c.all, id, item)
	selected := item
	c.selected = &selected
	if inPage || inAll {
		c.recomputeLocked()
	}
	c.mu.Unlock()

	c.notify(ActionSelected, id)
	return nil
}

// SetFilters replaces the filter state and returns to the first page.
func (c *Container[T]) SetFilters(filters Filters) {
	c.mu.Lock()
	c.filters = filters.Normalize()
	c.page = c.page.FirstPage()
	c.recomputeLocked()
	c.mu.Unlock()

	c.notify(ActionFiltersChanged, "")
}

// UpdateFilters applies fn to the current filters and returns to the first page.
func (c *Container[T]) UpdateFilters(fn func(Filters) Filters) {
	if fn == nil {
		return
	}
	c.SetFilters(fn(c.Filters()))
}

// GoToPage moves the page window. Out-of-range pages are rejected with
// ErrPageOutOfRange and leave the state unchanged.
func (c *Container[T]) GoToPage(page int) error {
	c.mu.Lock()
	next, err := c.page.GoTo(page)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.page = next
	c.mu.Unlock()

	c.notify(ActionPageChanged, "")
	return nil
}

// SetItemsPerPage changes the page size and returns to the first page.
func (c *Container[T]) SetItemsPerPage(perPage int) error {
	c.mu.Lock()
	next, err := c.page.WithItemsPerPage(perPage)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.page = next
	c.mu.Unlock()

	c.notify(ActionPageChanged, "")
	return nil
}

// Select marks the entity with id as current. It returns false when id is unknown.
func (c *Container[T]) Select(id string) bool {
	c.mu.Lock()
	index := indexByID(c.all, strings.TrimSpace(id))
	if index < 0 {
		index = indexByID(c.items, strings.TrimSpace(id))
		if index < 0 {
			c.mu.Unlock()
			return false
		}
		selected := c.items[index]
		c.selected = &selected
	} else {
		selected := c.all[index]
		c.selected = &selected
	}
	c.mu.Unlock()

	c.notify(ActionSelected, strings.TrimSpace(id))
	return true
}

// Deselect clears the selection when id is the selected entity. It returns false when
// id is not selected.
func (c *Container[T]) Deselect(id string) bool {
	id = strings.TrimSpace(id)
	c.mu.Lock()
	if c.selected == nil || (*c.selected).EntityID() != id {
		c.mu.Unlock()
		return false
	}
	c.selected = nil
	c.mu.Unlock()

	c.notify(ActionSelected, "")
	return true
}

// Seed loads development data without a request. Status stays idle.
func (c *Container[T]) Seed(items []T) {
	c.mu.Lock()
	c.items = cloneSlice(items)
	c.all = cloneSlice(items)
	c.remote = RemotePage{Page: 1, Limit: c.page.ItemsPerPage, TotalItems: len(items), TotalPages: TotalPagesFor(len(items), c.page.ItemsPerPage)}
	c.recomputeLocked()
	c.mu.Unlock()

	c.notify(ActionListLoaded, "")
}

// Reset restores the initial empty state and discards every outstanding response.
func (c *Container[T]) Reset() {
	c.mu.Lock()
	c.tokens.reset()
	c.resetLocked()
	c.mu.Unlock()

	c.notify(ActionReset, "")
}

func (c *Container[T]) View() View[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	view := View[T]{
		Entity:     c.desc.Entity,
		Status:     c.status,
		Error:      c.lastError,
		Items:      Slice(c.filtered, c.page),
		Filtered:   len(c.filtered),
		Pagination: c.page,
		Remote:     c.remote,
		Filters:    c.filters.Normalize(),
		Stats:      c.stats.Clone(),
		UpdatedAt:  c.updatedAt,
	}
	if c.selected != nil {
		selected := *c.selected
		view.Selected = &selected
	}
	return view
}

// Items returns the last fetched page as returned by the backend.
func (c *Container[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSlice(c.items)
}

// All returns the complete collection.
func (c *Container[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSlice(c.all)
}

// Filtered returns every item of the complete collection matching the active filters.
func (c *Container[T]) Filtered() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSlice(c.filtered)
}

func (c *Container[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id = strings.TrimSpace(id)
	if index := indexByID(c.all, id); index >= 0 {
		return c.all[index], true
	}
	if index := indexByID(c.items, id); index >= 0 {
		return c.items[index], true
	}
	var zero T
	return zero, false
}

func (c *Container[T]) Selected() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selected == nil {
		var zero T
		return zero, false
	}
	return *c.selected, true
}

func (c *Container[T]) Filters() Filters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filters.Normalize()
}

func (c *Container[T]) Pagination() Pagination {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

func (c *Container[T]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats.Clone()
}

func (c *Container[T]) Status() (Status, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status, c.lastError
}

func (c *Container[T]) mutationAppliedLocked() {
	if c.status != StatusLoading {
		c.status = StatusSucceeded
		c.lastError = ""
	}
	c.recomputeLocked()
}

func (c *Container[T]) recomputeLocked() {
	c.stats = computeStats(c.all, c.desc.Stats)
	c.filtered = ApplyFilters(c.all, c.filters, c.desc.Predicate, c.desc.SearchFields)
	c.page = c.page.WithTotal(len(c.filtered))
	c.updatedAt = c.now().UTC()
}

func (c *Container[T]) resetLocked() {
	c.status = StatusIdle
	c.lastError = ""
	c.items = []T{}
	c.all = []T{}
	c.filtered = []T{}
	c.selected = nil
	c.filters = Filters{}
	c.page = NewPagination(c.pageSize)
	c.remote = RemotePage{}
	c.stats = computeStats(c.all, c.desc.Stats)
	c.updatedAt = time.Time{}
}

func (c *Container[T]) notify(action, resourceID string) {
	c.mu.RLock()
	watchers := append([]ChangeFunc(nil), c.watchers...)
	at := c.now().UTC()
	c.mu.RUnlock()

	change := Change{Entity: c.desc.Entity, Action: action, ResourceID: resourceID, At: at}
	for _, watcher := range watchers {
		watcher(change)
	}
}
