package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
)

// EntityConsole is the type-erased surface of one entity domain used by the HTTP and
// websocket layers.
type EntityConsole interface {
	Entity() string
	View() any
	Stats() domain.Stats
	Status() (domain.Status, string)
	OnChange(fn domain.ChangeFunc)

	Refresh(ctx context.Context, token string) error
	SetFilters(filters domain.Filters) any
	GoToPage(page int) (any, error)
	SetItemsPerPage(perPage int) (any, error)
	Select(id string) bool
	Deselect(id string) bool

	Get(ctx context.Context, token, id string) (any, error)
	Create(ctx context.Context, token string, body []byte) (any, error)
	Update(ctx context.Context, token, id string, body []byte) (any, error)
	Delete(ctx context.Context, token, id string) error
	ToggleStatus(ctx context.Context, token, id string, body []byte) (any, error)
	Restore(ctx context.Context, token, id string) (any, error)

	Export(w io.Writer, exporter port.Exporter) error
	Seed() int
	Reset()
}

// ConsoleView is the JSON document served for one entity domain.
type ConsoleView[T domain.Entity] struct {
	domain.View[T]
	Options []domain.Option `json:"options,omitempty"`
}

// Binding adapts EntityActions of a concrete entity type to EntityConsole.
type Binding[T domain.Entity] struct {
	actions *EntityActions[T]
	options *domain.OptionSet
}

func NewBinding[T domain.Entity](actions *EntityActions[T]) *Binding[T] {
	return &Binding[T]{actions: actions}
}

// WithOptions attaches a list derived from another domain, served with every view.
func (b *Binding[T]) WithOptions(options *domain.OptionSet) *Binding[T] {
	b.options = options
	return b
}

func (b *Binding[T]) Actions() *EntityActions[T] { return b.actions }

func (b *Binding[T]) container() *domain.Container[T] { return b.actions.Container() }

func (b *Binding[T]) Entity() string { return b.container().Entity() }

func (b *Binding[T]) View() any {
	view := ConsoleView[T]{View: b.container().View()}
	if b.options != nil {
		view.Options = b.options.Items()
	}
	return view
}

func (b *Binding[T]) Stats() domain.Stats { return b.container().Stats() }

func (b *Binding[T]) Status() (domain.Status, string) { return b.container().Status() }

func (b *Binding[T]) OnChange(fn domain.ChangeFunc) { b.container().OnChange(fn) }

func (b *Binding[T]) Refresh(ctx context.Context, token string) error {
	return b.actions.List(ctx, token)
}

func (b *Binding[T]) SetFilters(filters domain.Filters) any {
	b.container().SetFilters(filters)
	return b.View()
}

func (b *Binding[T]) GoToPage(page int) (any, error) {
	if err := b.container().GoToPage(page); err != nil {
		return nil, err
	}
	return b.View(), nil
}

func (b *Binding[T]) SetItemsPerPage(perPage int) (any, error) {
	if err := b.container().SetItemsPerPage(perPage); err != nil {
		return nil, err
	}
	return b.View(), nil
}

func (b *Binding[T]) Select(id string) bool { return b.container().Select(id) }

func (b *Binding[T]) Deselect(id string) bool { return b.container().Deselect(id) }

func (b *Binding[T]) Get(ctx context.Context, token, id string) (any, error) {
	return b.actions.Get(ctx, token, id)
}

func (b *Binding[T]) Create(ctx context.Context, token string, body []byte) (any, error) {
	draft, err := b.decodeDraft(body)
	if err != nil {
		return nil, err
	}
	return b.actions.Create(ctx, token, draft)
}

func (b *Binding[T]) Update(ctx context.Context, token, id string, body []byte) (any, error) {
	draft, err := b.decodeDraft(body)
	if err != nil {
		return nil, err
	}
	desc := b.container().Descriptor()
	if desc.Prefill != nil {
		if current, ok := b.container().Find(id); ok {
			desc.Prefill(draft, current)
		}
	}
	return b.actions.Update(ctx, token, id, draft)
}

func (b *Binding[T]) Delete(ctx context.Context, token, id string) error {
	return b.actions.Delete(ctx, token, id)
}

func (b *Binding[T]) ToggleStatus(ctx context.Context, token, id string, body []byte) (any, error) {
	var payload map[string]any
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, domain.ValidationError{Msg: fmt.Sprintf("invalid body: %v", err)}
		}
	}
	return b.actions.ToggleStatus(ctx, token, id, payload)
}

func (b *Binding[T]) Restore(ctx context.Context, token, id string) (any, error) {
	return b.actions.Restore(ctx, token, id)
}

// Export writes every entity matching the active filters, across all pages.
func (b *Binding[T]) Export(w io.Writer, exporter port.Exporter) error {
	desc := b.container().Descriptor()
	if len(desc.Columns) == 0 || exporter == nil {
		return port.ErrUnsupported
	}
	headers := make([]string, len(desc.Columns))
	for i, column := range desc.Columns {
		headers[i] = column.Header
	}
	filtered := b.container().Filtered()
	rows := make([][]any, 0, len(filtered))
	for _, item := range filtered {
		row := make([]any, len(desc.Columns))
		for i, column := range desc.Columns {
			row[i] = column.Value(item)
		}
		rows = append(rows, row)
	}
	return exporter.Write(w, desc.Entity, headers, rows)
}

// Seed loads the domain's development samples and returns how many were loaded.
func (b *Binding[T]) Seed() int {
	desc := b.container().Descriptor()
	if desc.Samples == nil {
		return 0
	}
	samples := desc.Samples()
	b.container().Seed(samples)
	return len(samples)
}

func (b *Binding[T]) Reset() { b.container().Reset() }

func (b *Binding[T]) decodeDraft(body []byte) (domain.Draft, error) {
	desc := b.container().Descriptor()
	if desc.NewDraft == nil {
		return nil, port.ErrUnsupported
	}
	draft := desc.NewDraft()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, domain.ValidationError{Msg: "request body is required"}
	}
	if err := json.Unmarshal(body, draft); err != nil {
		return nil, domain.ValidationError{Msg: fmt.Sprintf("invalid body: %v", err)}
	}
	return draft, nil
}

var _ EntityConsole = (*Binding[domain.Entity])(nil)
