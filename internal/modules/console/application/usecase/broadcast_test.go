package usecase

import (
	"context"
	"testing"

	categories "adminConsole/internal/modules/categories/domain"
	"adminConsole/internal/modules/console/domain"
)

type recordingBroadcaster struct {
	messages []*domain.Message
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	b.messages = append(b.messages, msg)
}

func TestWatchStateBroadcastsLocalChangesOnly(t *testing.T) {
	t.Parallel()

	broadcaster := &recordingBroadcaster{}
	binding := NewBinding(NewEntityActions(domain.NewContainer(categories.Descriptor(), 2), newFakeGateway(), nil))
	NewBroadcastUseCase(broadcaster).WatchState(binding)

	binding.Seed()
	binding.SetFilters(domain.Filters{Search: "a"})
	if _, err := binding.GoToPage(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	binding.Reset()

	got := make([]string, 0, len(broadcaster.messages))
	for _, msg := range broadcaster.messages {
		if msg.Topic != "categories.state" {
			t.Fatalf("unexpected topic %q", msg.Topic)
		}
		got = append(got, msg.Action)
	}
	want := []string{domain.ActionFiltersChanged, domain.ActionPageChanged, domain.ActionReset}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
