package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeAmount is returned for amounts below zero.
	ErrNegativeAmount = fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	// ErrUnknownKind is returned when the transaction type is neither income nor expense.
	ErrUnknownKind = fmt.Errorf("%w: transaction type must be income or expense", domain.ErrValidation)
)

// Kind is the stored transaction type.
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

// ParseKind maps the lower-case API value to the stored kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return KindIncome, nil
	case "expense":
		return KindExpense, nil
	}
	return "", ErrUnknownKind
}

// APIValue returns the lower-case value used on the HTTP surface.
func (k Kind) APIValue() string {
	if k == KindIncome {
		return "income"
	}
	return "expense"
}

// Transaction is an append-only ledger line owned by a user.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   *uuid.UUID
	Kind        Kind
	Amount      decimal.Decimal
	Category    string
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New validates and builds a transaction dated now.
func New(
	userID uuid.UUID,
	accountID *uuid.UUID,
	kind Kind,
	amount decimal.Decimal,
	category, description string,
) (*Transaction, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if kind != KindIncome && kind != KindExpense {
		return nil, ErrUnknownKind
	}
	now := time.Now().UTC()
	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   accountID,
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
		OccurredAt:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
