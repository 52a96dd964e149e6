package transaction

import (
	"context"

	"github.com/amirasaad/finhub/pkg/domain/transaction"
	"github.com/google/uuid"
)

// Repository defines transaction data access. Transactions are append-only.
type Repository interface {
	Create(ctx context.Context, tx *transaction.Transaction) error
	// ListByUser returns up to limit transactions, newest date first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*transaction.Transaction, error)
}
