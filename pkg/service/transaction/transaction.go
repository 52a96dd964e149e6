package transaction

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finhub/pkg/domain/account"
	"github.com/amirasaad/finhub/pkg/domain/transaction"
	"github.com/amirasaad/finhub/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListLimit caps ListForUser.
const ListLimit = 100

// Resolver maps a user alias to the internal user id.
type Resolver interface {
	Resolve(ctx context.Context, alias string) (uuid.UUID, error)
}

// AccountBootstrapper finds or creates the account a transaction is booked to.
type AccountBootstrapper interface {
	EnsureDefault(ctx context.Context, userID uuid.UUID) (*account.Account, error)
}

// CreateInput is a new ledger line as sent by the frontend.
type CreateInput struct {
	Amount      decimal.Decimal
	Type        string
	Category    string
	Description string
}

type Service struct {
	repos    repository.Provider
	resolver Resolver
	accounts AccountBootstrapper
	logger   *slog.Logger
}

// New creates a new transaction Service.
func New(
	repos repository.Provider,
	resolver Resolver,
	accounts AccountBootstrapper,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repos:    repos,
		resolver: resolver,
		accounts: accounts,
		logger:   logger.With("service", "transaction"),
	}
}

// Create books a transaction dated now against the user's default account.
func (s *Service) Create(ctx context.Context, alias string, in CreateInput) (*transaction.Transaction, error) {
	kind, err := transaction.ParseKind(in.Type)
	if err != nil {
		return nil, err
	}
	userID, err := s.resolver.Resolve(ctx, alias)
	if err != nil {
		return nil, err
	}
	acc, err := s.accounts.EnsureDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	tx, err := transaction.New(userID, &acc.ID, kind, in.Amount, in.Category, in.Description)
	if err != nil {
		return nil, err
	}
	if err := s.repos.TransactionRepository().Create(ctx, tx); err != nil {
		s.logger.Error("create transaction failed", "user_id", userID, "error", err)
		return nil, err
	}
	return tx, nil
}

// ListForUser returns the user's latest transactions, newest first.
func (s *Service) ListForUser(ctx context.Context, alias string) ([]*transaction.Transaction, error) {
	userID, err := s.resolver.Resolve(ctx, alias)
	if err != nil {
		return nil, err
	}
	return s.repos.TransactionRepository().ListByUser(ctx, userID, ListLimit)
}
