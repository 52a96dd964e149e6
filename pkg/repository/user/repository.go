package user

import (
	"context"

	"github.com/amirasaad/finhub/pkg/domain/user"
)

// Repository defines user data access. Users are never updated or deleted.
type Repository interface {
	// FindByAlias returns the first user whose auth-provider id or email
	// equals alias, or user.ErrUserNotFound.
	FindByAlias(ctx context.Context, alias string) (*user.User, error)
	// Create inserts a new user.
	Create(ctx context.Context, u *user.User) error
	// List returns up to limit users in store order.
	List(ctx context.Context, limit int) ([]*user.User, error)
}
