package notification

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/amirasaad/finhub/pkg/domain/events"
	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/amirasaad/finhub/pkg/eventbus"
	"github.com/google/uuid"
)

// Emitter stores a notification.
type Emitter interface {
	Emit(ctx context.Context, recipientID, loanID uuid.UUID, kind notification.Kind, message string) error
}

// Notifier hands notification writes to the event bus so request handlers
// return before the write happens.
type Notifier struct {
	bus    eventbus.Bus
	logger *slog.Logger
}

// NewNotifier creates a Notifier publishing to bus.
func NewNotifier(bus eventbus.Bus, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{bus: bus, logger: logger.With("component", "notifier")}
}

// Enqueue publishes the request. A full queue or a bus failure is logged and
// the notification is dropped.
func (n *Notifier) Enqueue(ctx context.Context, req *events.NotificationRequested) {
	if err := n.bus.Emit(ctx, req); err != nil {
		n.logger.Warn("notification dropped",
			"error", err,
			"recipient_id", req.RecipientID,
			"loan_id", req.LoanID,
			"kind", req.Kind,
		)
	}
}

// HandleRequested returns the bus handler that stores requested
// notifications. An unavailable store is a silent no-op; other errors go
// back to the bus.
func HandleRequested(emitter Emitter, logger *slog.Logger) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, e events.Event) error {
		req, ok := e.(*events.NotificationRequested)
		if !ok {
			logger.Error("unexpected event type", "type", e.Type())
			return nil
		}
		err := emitter.Emit(ctx, req.RecipientID, req.LoanID, req.Kind, req.Message)
		if errors.Is(err, domain.ErrStoreUnavailable) {
			logger.Debug("store unavailable, notification skipped", "loan_id", req.LoanID)
			return nil
		}
		return err
	}
}

// Register wires HandleRequested into bus.
func Register(bus eventbus.Bus, emitter Emitter, logger *slog.Logger) {
	bus.Register(events.EventTypeNotificationRequested, HandleRequested(emitter, logger))
}

var _ Emitter = (*Service)(nil)
