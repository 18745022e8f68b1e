package testutil

import (
	"context"
	"sync"

	"github.com/OliveiraNt/netbind/internal/domain"
)

// FakePublisher records published color events.
type FakePublisher struct {
	mu     sync.Mutex
	Events []domain.ColorEvent
	Err    error
	Closed bool
}

func NewFakePublisher() *FakePublisher { return &FakePublisher{} }

func (f *FakePublisher) Publish(_ context.Context, ev domain.ColorEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Events = append(f.Events, ev)
	return nil
}

func (f *FakePublisher) Close() {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
}

// Published returns a copy of the recorded events.
func (f *FakePublisher) Published() []domain.ColorEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ColorEvent(nil), f.Events...)
}
