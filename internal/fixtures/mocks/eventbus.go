package mocks

import (
	"context"
	"sync"

	"github.com/amirasaad/finhub/pkg/domain/events"
	"github.com/amirasaad/finhub/pkg/eventbus"
)

// RecordingBus keeps emitted events instead of delivering them. Err, when
// set, is returned by every Emit.
type RecordingBus struct {
	mu      sync.Mutex
	Err     error
	emitted []events.Event
}

func (b *RecordingBus) Register(events.EventType, eventbus.HandlerFunc) {}

func (b *RecordingBus) Emit(_ context.Context, e events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	b.emitted = append(b.emitted, e)
	return nil
}

func (b *RecordingBus) Close(context.Context) error { return nil }

// Emitted returns a copy of the events seen so far.
func (b *RecordingBus) Emitted() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.emitted...)
}

var _ eventbus.Bus = (*RecordingBus)(nil)
