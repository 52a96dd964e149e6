package events

import (
	"time"

	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/google/uuid"
)

// NotificationRequested asks the background worker to append a notification
// row. It is emitted after a loan is created or repaid.
type NotificationRequested struct {
	RecipientID uuid.UUID         `json:"recipient_id"`
	LoanID      uuid.UUID         `json:"loan_id"`
	Kind        notification.Kind `json:"kind"`
	Message     string            `json:"message"`
	RequestedAt time.Time         `json:"requested_at"`
}

func (e *NotificationRequested) Type() string {
	return EventTypeNotificationRequested.String()
}

// NewNotificationRequested stamps the request time.
func NewNotificationRequested(
	recipientID, loanID uuid.UUID,
	kind notification.Kind,
	message string,
) *NotificationRequested {
	return &NotificationRequested{
		RecipientID: recipientID,
		LoanID:      loanID,
		Kind:        kind,
		Message:     message,
		RequestedAt: time.Now().UTC(),
	}
}
