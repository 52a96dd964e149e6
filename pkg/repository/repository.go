package repository

import (
	"context"

	"github.com/amirasaad/finhub/pkg/repository/account"
	"github.com/amirasaad/finhub/pkg/repository/loan"
	"github.com/amirasaad/finhub/pkg/repository/notification"
	"github.com/amirasaad/finhub/pkg/repository/transaction"
	"github.com/amirasaad/finhub/pkg/repository/user"
)

// Provider hands out the typed repositories of one store. Calls are not
// grouped into transactions: every repository method is a single statement.
type Provider interface {
	UserRepository() user.Repository
	AccountRepository() account.Repository
	TransactionRepository() transaction.Repository
	LoanRepository() loan.Repository
	NotificationRepository() notification.Repository
	// Ping probes the underlying store.
	Ping(ctx context.Context) error
}
