package usecase

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"adminConsole/internal/modules/console/domain"
	"adminConsole/internal/shared/normalization"
)

// Registry holds the console of every entity domain.
type Registry struct {
	mu         sync.RWMutex
	consoles   map[string]EntityConsole
	resetHooks []func()
	now        func() time.Time
}

// Overview combines the stats snapshot of every registered domain.
type Overview struct {
	Entities    map[string]EntityOverview `json:"entities"`
	GeneratedAt time.Time                 `json:"generatedAt"`
}

type EntityOverview struct {
	Status domain.Status `json:"status"`
	Error  string        `json:"error,omitempty"`
	Stats  domain.Stats  `json:"stats"`
}

func NewRegistry() *Registry {
	return &Registry{consoles: make(map[string]EntityConsole), now: time.Now}
}

func (r *Registry) Register(console EntityConsole) {
	if console == nil {
		return
	}
	name := normalization.NormalizeEntity(console.Entity())
	r.mu.Lock()
	r.consoles[name] = console
	r.mu.Unlock()
	slog.Debug("console registered", slog.String("entity", name))
}

// Lookup resolves name through the entity aliases ("category", "user_address", ...).
func (r *Registry) Lookup(name string) (EntityConsole, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	console, ok := r.consoles[normalization.NormalizeEntity(name)]
	return console, ok
}

// Entities returns the registered entity names in alphabetical order.
func (r *Registry) Entities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.consoles))
	for name := range r.consoles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnReset registers fn to run after every ResetAll.
func (r *Registry) OnReset(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.resetHooks = append(r.resetHooks, fn)
	r.mu.Unlock()
}

// ResetAll returns every container to its initial state and discards all in-flight
// responses. It is used on logout.
func (r *Registry) ResetAll() {
	r.mu.RLock()
	consoles := make([]EntityConsole, 0, len(r.consoles))
	for _, console := range r.consoles {
		consoles = append(consoles, console)
	}
	hooks := append([]func(){}, r.resetHooks...)
	r.mu.RUnlock()

	for _, console := range consoles {
		console.Reset()
	}
	for _, hook := range hooks {
		hook()
	}
	slog.Info("console store reset", slog.Int("entities", len(consoles)))
}

// SeedAll loads development samples into every container.
func (r *Registry) SeedAll() map[string]int {
	seeded := make(map[string]int)
	for _, name := range r.Entities() {
		if console, ok := r.Lookup(name); ok {
			seeded[name] = console.Seed()
		}
	}
	return seeded
}

func (r *Registry) Overview() Overview {
	overview := Overview{Entities: make(map[string]EntityOverview), GeneratedAt: r.now().UTC()}
	for _, name := range r.Entities() {
		console, ok := r.Lookup(name)
		if !ok {
			continue
		}
		status, message := console.Status()
		overview.Entities[name] = EntityOverview{Status: status, Error: message, Stats: console.Stats()}
	}
	return overview
}
