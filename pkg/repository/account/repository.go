package account

import (
	"context"

	"github.com/amirasaad/finhub/pkg/domain/account"
	"github.com/google/uuid"
)

// Repository defines account data access.
type Repository interface {
	// ListByUser returns the user's accounts, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
	// FindDefault returns the account flagged default, or account.ErrAccountNotFound.
	FindDefault(ctx context.Context, userID uuid.UUID) (*account.Account, error)
	// FindAny returns any one of the user's accounts, or account.ErrAccountNotFound.
	FindAny(ctx context.Context, userID uuid.UUID) (*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
}
