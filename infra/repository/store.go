package repository

import (
	"context"

	"github.com/amirasaad/finhub/infra/repository/account"
	"github.com/amirasaad/finhub/infra/repository/loan"
	"github.com/amirasaad/finhub/infra/repository/notification"
	"github.com/amirasaad/finhub/infra/repository/transaction"
	"github.com/amirasaad/finhub/infra/repository/user"
	"github.com/amirasaad/finhub/pkg/repository"
	accountrepo "github.com/amirasaad/finhub/pkg/repository/account"
	loanrepo "github.com/amirasaad/finhub/pkg/repository/loan"
	notificationrepo "github.com/amirasaad/finhub/pkg/repository/notification"
	transactionrepo "github.com/amirasaad/finhub/pkg/repository/transaction"
	userrepo "github.com/amirasaad/finhub/pkg/repository/user"
)

// Store builds the typed repositories on one gateway.
type Store struct {
	gw            repository.Gateway
	users         userrepo.Repository
	accounts      accountrepo.Repository
	transactions  transactionrepo.Repository
	loans         loanrepo.Repository
	notifications notificationrepo.Repository
}

// NewStore creates a Store for gw.
func NewStore(gw repository.Gateway) *Store {
	return &Store{
		gw:            gw,
		users:         user.New(gw),
		accounts:      account.New(gw),
		transactions:  transaction.New(gw),
		loans:         loan.New(gw),
		notifications: notification.New(gw),
	}
}

func (s *Store) UserRepository() userrepo.Repository { return s.users }
func (s *Store) AccountRepository() accountrepo.Repository { return s.accounts }
func (s *Store) TransactionRepository() transactionrepo.Repository { return s.transactions }
func (s *Store) LoanRepository() loanrepo.Repository { return s.loans }
func (s *Store) NotificationRepository() notificationrepo.Repository { return s.notifications }

// Ping probes the store through the gateway.
func (s *Store) Ping(ctx context.Context) error { return s.gw.Ping(ctx) }

var _ repository.Provider = (*Store)(nil)
