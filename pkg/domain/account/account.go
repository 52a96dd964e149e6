package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrAccountNotFound is returned when a user has no matching account.
var ErrAccountNotFound = fmt.Errorf("account %w", domain.ErrNotFound)

// Kind is the account type as stored by the frontend schema.
type Kind string

const (
	KindCurrent Kind = "CURRENT"
	KindSavings Kind = "SAVINGS"
)

// DefaultName is the name given to accounts created on a user's behalf.
const DefaultName = "Default Account"

// Account holds a user's balance. At most one account per user is expected
// to be marked default, but nothing here enforces it: two concurrent
// bootstraps can both create a default account.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Kind      Kind
	Balance   decimal.Decimal
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDefault builds the account created lazily on a user's first transaction.
func NewDefault(userID uuid.UUID) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      DefaultName,
		Kind:      KindCurrent,
		Balance:   decimal.Zero,
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TotalBalance sums the balances of accounts.
func TotalBalance(accounts []*Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a == nil {
			continue
		}
		total = total.Add(a.Balance)
	}
	return total
}
