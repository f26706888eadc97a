package usecase

import (
	"context"
	"sync"

	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/domain"
)

type gatewayCall struct {
	op      string
	entity  string
	id      string
	payload map[string]any
	query   domain.PagedQuery
}

type gatewayResult struct {
	env *domain.Envelope
	err error
}

// fakeGateway answers every operation from a per-operation script. A hook may run
// before the answer is returned to simulate concurrent activity.
type fakeGateway struct {
	mu        sync.Mutex
	results   map[string]gatewayResult
	listPages map[int]gatewayResult
	hooks     map[string]func()
	calls     []gatewayCall
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		results:   map[string]gatewayResult{},
		listPages: map[int]gatewayResult{},
		hooks:     map[string]func(){},
	}
}

func (g *fakeGateway) on(op string, env *domain.Envelope, err error) *fakeGateway {
	g.results[op] = gatewayResult{env: env, err: err}
	return g
}

// onListPage answers list requests for one page; other pages fall back to on("list").
func (g *fakeGateway) onListPage(page int, env *domain.Envelope, err error) *fakeGateway {
	g.listPages[page] = gatewayResult{env: env, err: err}
	return g
}

func (g *fakeGateway) before(op string, fn func()) *fakeGateway {
	g.hooks[op] = fn
	return g
}

func (g *fakeGateway) answer(call gatewayCall) (*domain.Envelope, error) {
	g.mu.Lock()
	g.calls = append(g.calls, call)
	hook := g.hooks[call.op]
	result, ok := g.results[call.op]
	if paged, found := g.listPages[call.query.Page]; found && call.op == "list" {
		result, ok = paged, true
	}
	g.mu.Unlock()
	if hook != nil {
		hook()
	}
	if !ok {
		return nil, port.ErrUnsupported
	}
	return result.env, result.err
}

func (g *fakeGateway) count(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := 0
	for _, call := range g.calls {
		if call.op == op {
			total++
		}
	}
	return total
}

func (g *fakeGateway) listedPages() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	var pages []int
	for _, call := range g.calls {
		if call.op == "list" {
			pages = append(pages, call.query.Page)
		}
	}
	return pages
}

func (g *fakeGateway) List(_ context.Context, _ string, entity string, query domain.PagedQuery) (*domain.Envelope, error) {
	return g.answer(gatewayCall{op: "list", entity: entity, query: query})
}

func (g *fakeGateway) Detail(_ context.Context, _ string, entity, id string) (*domain.Envelope, error) {
	return g.answer(gatewayCall{op: "detail", entity: entity, id: id})
}

func (g *fakeGateway) Create(_ context.Context, _ string, entity string, payload map[string]any) (*domain.Envelope, error) {
	return g.answer(gatewayCall{op: "create", entity: entity, payload: payload})
}

func (g *fakeGateway) Update(_ context.Context, _ string, entity, id string, payload map[string]any) (*domain.Envelope, error) {
	return g.answer(gatewayCall{op: "update", entity: entity, id: id, payload: payload})
}

func (g *fakeGateway) Delete(_ context.Context, _ string, entity, id string) (*domain.Envelope, error) {
	return g.answer(gatewayCall{op: "delete", entity: entity, id: id})
}

func (g *fakeGateway) ToggleStatus(_ context.Context, _ string, entity, id string, payload map[string]any) (*domain.Envelope, error) {
	return g.answer(gatewayCall{op: "toggle", entity: entity, id: id, payload: payload})
}

func (g *fakeGateway) Restore(_ context.Context, _ string, entity, id string) (*domain.Envelope, error) {
	return g.answer(gatewayCall{op: "restore", entity: entity, id: id})
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []*domain.Message
}

func (p *recordingPublisher) Publish(_ context.Context, msg *domain.Message) {
	p.mu.Lock()
	p.messages = append(p.messages, msg)
	p.mu.Unlock()
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, 0, len(p.messages))
	for _, msg := range p.messages {
		topics = append(topics, msg.Topic+"/"+msg.Action)
	}
	return topics
}

func success(response any) *domain.Envelope {
	return &domain.Envelope{ResponseCode: domain.ResponseCodeSuccess, ResponseMessage: "OK", Response: response}
}

func rejected(code int, message string) *domain.Envelope {
	return &domain.Envelope{ResponseCode: code, ResponseMessage: message}
}
