package notification

import (
	"context"

	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/google/uuid"
)

// Repository defines notification data access. Rows are append-only.
type Repository interface {
	Create(ctx context.Context, n *notification.Notification) error
	// ListByRecipient returns up to limit notifications, newest first.
	ListByRecipient(ctx context.Context, userID uuid.UUID, limit int) ([]*notification.Notification, error)
}
