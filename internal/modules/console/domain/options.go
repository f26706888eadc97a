package domain

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Option is one entry of a selectable list derived from another domain.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// OptionSet is a replaceable list of options, e.g. the categories a product form offers.
type OptionSet struct {
	mu          sync.RWMutex
	items       []Option
	refreshedAt time.Time
}

func NewOptionSet() *OptionSet {
	return &OptionSet{items: []Option{}}
}

// Replace swaps the full option list, sorted by label.
func (s *OptionSet) Replace(items []Option, at time.Time) {
	next := make([]Option, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		next = append(next, item)
	}
	sort.SliceStable(next, func(i, j int) bool {
		return strings.ToLower(next[i].Label) < strings.ToLower(next[j].Label)
	})

	s.mu.Lock()
	s.items = next
	s.refreshedAt = at.UTC()
	s.mu.Unlock()
}

func (s *OptionSet) Items() []Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.items)
}

func (s *OptionSet) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (s *OptionSet) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

func (s *OptionSet) Reset() {
	s.mu.Lock()
	s.items = []Option{}
	s.refreshedAt = time.Time{}
	s.mu.Unlock()
}
