package account

import (
	"time"

	"github.com/amirasaad/finhub/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Table        = "accounts"
	ColID        = "id"
	ColUserID    = "userId"
	ColIsDefault = "isDefault"
	ColCreatedAt = "createdAt"
)

// Account represents an account record in the database.
type Account struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name      string          `gorm:"column:name"`
	Type      string          `gorm:"column:type"`
	Balance   decimal.Decimal `gorm:"column:balance;type:numeric"`
	IsDefault bool            `gorm:"column:isDefault"`
	UserID    uuid.UUID       `gorm:"column:userId;type:uuid;index"`
	CreatedAt time.Time       `gorm:"column:createdAt"`
	UpdatedAt time.Time       `gorm:"column:updatedAt"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return Table
}

func mapModelToDomain(m *Account) *account.Account {
	return &account.Account{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Kind:      account.Kind(m.Type),
		Balance:   m.Balance,
		IsDefault: m.IsDefault,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func mapDomainToModel(a *account.Account) *Account {
	return &Account{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Kind),
		Balance:   a.Balance,
		IsDefault: a.IsDefault,
		UserID:    a.UserID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
