package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/finhub/pkg/domain/account"
	"github.com/amirasaad/finhub/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Resolver maps a user alias to the internal user id.
type Resolver interface {
	Resolve(ctx context.Context, alias string) (uuid.UUID, error)
}

// Service answers account queries and bootstraps default accounts.
type Service struct {
	repos    repository.Provider
	resolver Resolver
	logger   *slog.Logger
}

// New creates a new account Service.
func New(repos repository.Provider, resolver Resolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repos: repos, resolver: resolver, logger: logger.With("service", "account")}
}

// ListForUser returns the user's accounts, newest first.
func (s *Service) ListForUser(ctx context.Context, alias string) ([]*account.Account, error) {
	userID, err := s.resolver.Resolve(ctx, alias)
	if err != nil {
		return nil, err
	}
	return s.repos.AccountRepository().ListByUser(ctx, userID)
}

// Default returns the user's default account, or nil when there is none.
func (s *Service) Default(ctx context.Context, alias string) (*account.Account, error) {
	userID, err := s.resolver.Resolve(ctx, alias)
	if err != nil {
		return nil, err
	}
	a, err := s.repos.AccountRepository().FindDefault(ctx, userID)
	if errors.Is(err, account.ErrAccountNotFound) {
		return nil, nil
	}
	return a, err
}

// Balance returns the sum of all the user's balances when total is set,
// otherwise the default account's balance. A user without accounts has
// balance zero.
func (s *Service) Balance(ctx context.Context, alias string, total bool) (uuid.UUID, decimal.Decimal, error) {
	userID, err := s.resolver.Resolve(ctx, alias)
	if err != nil {
		return uuid.Nil, decimal.Zero, err
	}
	repo := s.repos.AccountRepository()
	if total {
		accounts, err := repo.ListByUser(ctx, userID)
		if err != nil {
			return userID, decimal.Zero, err
		}
		return userID, account.TotalBalance(accounts), nil
	}
	a, err := repo.FindDefault(ctx, userID)
	if errors.Is(err, account.ErrAccountNotFound) {
		return userID, decimal.Zero, nil
	}
	if err != nil {
		return userID, decimal.Zero, err
	}
	return userID, a.Balance, nil
}

// EnsureDefault returns the account a transaction should be booked to: the
// default account, else any account, else a newly created default account.
// Two concurrent first transactions of one user can both create an account.
func (s *Service) EnsureDefault(ctx context.Context, userID uuid.UUID) (*account.Account, error) {
	repo := s.repos.AccountRepository()

	a, err := repo.FindDefault(ctx, userID)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, account.ErrAccountNotFound) {
		return nil, err
	}

	a, err = repo.FindAny(ctx, userID)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, account.ErrAccountNotFound) {
		return nil, err
	}

	a = account.NewDefault(userID)
	if err := repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("default account created", "user_id", userID, "account_id", a.ID)
	return a, nil
}
