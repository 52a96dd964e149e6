package transaction

import (
	"time"

	"github.com/amirasaad/finhub/pkg/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Table     = "transactions"
	ColUserID = "userId"
	ColDate   = "date"
)

// Transaction represents a transaction record in the database.
type Transaction struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Type        string          `gorm:"column:type"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric"`
	Description string          `gorm:"column:description"`
	Date        time.Time       `gorm:"column:date"`
	Category    string          `gorm:"column:category"`
	UserID      uuid.UUID       `gorm:"column:userId;type:uuid;index"`
	AccountID   *uuid.UUID      `gorm:"column:accountId;type:uuid"`
	CreatedAt   time.Time       `gorm:"column:createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updatedAt"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return Table
}

func mapModelToDomain(m *Transaction) *transaction.Transaction {
	return &transaction.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		Kind:        transaction.Kind(m.Type),
		Amount:      m.Amount,
		Category:    m.Category,
		Description: m.Description,
		OccurredAt:  m.Date,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func mapDomainToModel(t *transaction.Transaction) *Transaction {
	return &Transaction{
		ID:          t.ID,
		Type:        string(t.Kind),
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.OccurredAt,
		Category:    t.Category,
		UserID:      t.UserID,
		AccountID:   t.AccountID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
