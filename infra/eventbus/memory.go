package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/finhub/pkg/domain/events"
	"github.com/amirasaad/finhub/pkg/eventbus"
)

const (
	DefaultQueueSize = 256
	DefaultWorkers   = 4
)

// MemoryAsyncEventBus runs handlers on a fixed worker pool fed by a bounded
// queue. Delivery is at-most-once: queued events are lost if the process dies.
type MemoryAsyncEventBus struct {
	handlers map[events.EventType][]eventbus.HandlerFunc
	mu       sync.RWMutex

	queue   chan events.Event
	closeMu sync.RWMutex
	closed  bool

	// ctx is the bus's own context. Handlers never see the emitter's context,
	// so a finished request cannot cancel its background work.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *slog.Logger
}

// NewWithMemoryAsync creates the in-process bus and starts its workers.
func NewWithMemoryAsync(logger *slog.Logger, queueSize, workers int) *MemoryAsyncEventBus {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &MemoryAsyncEventBus{
		handlers: make(map[events.EventType][]eventbus.HandlerFunc),
		queue:    make(chan events.Event, queueSize),
		ctx:      ctx,
		cancel:   cancel,
		log:      logger.With("event-bus", "memory"),
	}
	for i := 0; i < workers; i++ {
		b.wg.Add(1)
		go b.work()
	}
	return b
}

func (b *MemoryAsyncEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()
}

// Emit queues event without blocking. It returns eventbus.ErrQueueFull when
// the queue is at capacity and eventbus.ErrClosed after Close.
func (b *MemoryAsyncEventBus) Emit(_ context.Context, event events.Event) error {
	b.closeMu.RLock()
	defer b.closeMu.RUnlock()
	if b.closed {
		return eventbus.ErrClosed
	}
	select {
	case b.queue <- event:
		return nil
	default:
		return eventbus.ErrQueueFull
	}
}

// Close stops intake and waits for queued events to drain. If ctx expires
// first, in-flight handlers are cancelled and ctx's error is returned.
func (b *MemoryAsyncEventBus) Close(ctx context.Context) error {
	b.closeMu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
	}
	b.closeMu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.cancel()
		return nil
	case <-ctx.Done():
		b.cancel()
		b.log.Warn("event bus closed before queue drained", "pending", len(b.queue))
		return ctx.Err()
	}
}

func (b *MemoryAsyncEventBus) work() {
	defer b.wg.Done()
	for event := range b.queue {
		b.dispatch(event)
	}
}

func (b *MemoryAsyncEventBus) dispatch(event events.Event) {
	eventType := events.EventType(event.Type())
	b.mu.RLock()
	handlers := append([]eventbus.HandlerFunc{}, b.handlers[eventType]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Warn("no handlers registered for event type", "type", eventType)
		return
	}
	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("panic recovered in event handler", "type", eventType, "panic", r)
				}
			}()
			if err := handler(b.ctx, event); err != nil {
				b.log.Error("failed to process event", "type", eventType, "error", err)
			}
		}()
	}
}

var _ eventbus.Bus = (*MemoryAsyncEventBus)(nil)
