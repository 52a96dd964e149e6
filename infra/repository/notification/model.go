package notification

import (
	"time"

	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/google/uuid"
)

const (
	Table        = "notifications"
	ColUserID    = "user_id"
	ColCreatedAt = "created_at"
)

// Notification represents a notification record in the database.
type Notification struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	LoanID    uuid.UUID `gorm:"column:loan_id;type:uuid"`
	Type      string    `gorm:"column:type"`
	Message   string    `gorm:"column:message"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Read      bool      `gorm:"column:read"`
}

// TableName specifies the table name for the Notification model.
func (Notification) TableName() string {
	return Table
}

func mapModelToDomain(m *Notification) *notification.Notification {
	return &notification.Notification{
		ID:          m.ID,
		RecipientID: m.UserID,
		LoanID:      m.LoanID,
		Kind:        notification.Kind(m.Type),
		Message:     m.Message,
		CreatedAt:   m.CreatedAt,
		Read:        m.Read,
	}
}

func mapDomainToModel(n *notification.Notification) *Notification {
	return &Notification{
		ID:        n.ID,
		UserID:    n.RecipientID,
		LoanID:    n.LoanID,
		Type:      string(n.Kind),
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
		Read:      n.Read,
	}
}
