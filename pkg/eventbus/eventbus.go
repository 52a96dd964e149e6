package eventbus

import (
	"context"
	"errors"

	"github.com/amirasaad/finhub/pkg/domain/events"
)

// ErrQueueFull is returned by Emit when a bounded bus cannot accept more work.
var ErrQueueFull = errors.New("event bus: queue full")

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("event bus: closed")

// HandlerFunc processes one event. A returned error is logged by the bus or
// routed to its dead-letter destination.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus carries background work off the request path.
type Bus interface {
	Register(eventType events.EventType, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
	Close(ctx context.Context) error
}
