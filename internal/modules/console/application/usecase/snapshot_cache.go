package usecase

import (
	"strings"
	"sync"
	"time"

	"adminConsole/internal/modules/console/domain"
)

const cacheDelimiter = ":"

// snapshotCache keeps the last good dashboard payload per endpoint and request.
type snapshotCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]*snapshotCacheEntry
}

type snapshotCacheEntry struct {
	key       string
	request   domain.AnalyticsRequest
	snapshot  domain.AnalyticsSnapshot
	fetchedAt time.Time
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{entries: make(map[string]map[string]*snapshotCacheEntry)}
}

func (c *snapshotCache) set(key string, request domain.AnalyticsRequest, snapshot domain.AnalyticsSnapshot) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[key] == nil {
		c.entries[key] = make(map[string]*snapshotCacheEntry)
	}
	c.entries[key][cacheEntryKey(key, request)] = &snapshotCacheEntry{
		key:       key,
		request:   request.Clone(),
		snapshot:  snapshot,
		fetchedAt: snapshot.FetchedAt,
	}
}

func (c *snapshotCache) get(key string, request domain.AnalyticsRequest) (*snapshotCacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	byRequest := c.entries[strings.TrimSpace(key)]
	if byRequest == nil {
		return nil, false
	}
	entry, ok := byRequest[cacheEntryKey(key, request)]
	if !ok {
		return nil, false
	}
	return entry.clone(), true
}

// drop forgets every cached payload of key.
func (c *snapshotCache) drop(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	key = strings.TrimSpace(key)
	removed := len(c.entries[key])
	delete(c.entries, key)
	return removed
}

func (c *snapshotCache) clear() {
	c.mu.Lock()
	c.entries = make(map[string]map[string]*snapshotCacheEntry)
	c.mu.Unlock()
}

func (e *snapshotCacheEntry) clone() *snapshotCacheEntry {
	if e == nil {
		return nil
	}
	cloned := *e
	cloned.request = e.request.Clone()
	return &cloned
}

func cacheEntryKey(key string, request domain.AnalyticsRequest) string {
	return strings.ToLower(strings.TrimSpace(key)) + cacheDelimiter + request.Clone().CanonicalKey()
}
