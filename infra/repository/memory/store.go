// Package memory keeps every table in process. It backs DATABASE_DRIVER=memory
// and the service and handler tests, with the same conditional-update rules
// as the remote store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirasaad/finhub/pkg/domain/account"
	"github.com/amirasaad/finhub/pkg/domain/loan"
	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/amirasaad/finhub/pkg/domain/transaction"
	"github.com/amirasaad/finhub/pkg/domain/user"
	"github.com/amirasaad/finhub/pkg/repository"
	accountrepo "github.com/amirasaad/finhub/pkg/repository/account"
	loanrepo "github.com/amirasaad/finhub/pkg/repository/loan"
	notificationrepo "github.com/amirasaad/finhub/pkg/repository/notification"
	transactionrepo "github.com/amirasaad/finhub/pkg/repository/transaction"
	userrepo "github.com/amirasaad/finhub/pkg/repository/user"
	"github.com/google/uuid"
)

// Store is an in-process repository.Provider. Rows are kept in insertion
// order so "store order" is deterministic.
type Store struct {
	mu            sync.RWMutex
	users         []*user.User
	accounts      []*account.Account
	transactions  []*transaction.Transaction
	loans         []*loan.Loan
	notifications []*notification.Notification
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) UserRepository() userrepo.Repository { return users{s} }
func (s *Store) AccountRepository() accountrepo.Repository { return accounts{s} }
func (s *Store) TransactionRepository() transactionrepo.Repository { return transactions{s} }
func (s *Store) LoanRepository() loanrepo.Repository { return loans{s} }
func (s *Store) NotificationRepository() notificationrepo.Repository { return notifications{s} }

func (s *Store) Ping(context.Context) error { return nil }

var _ repository.Provider = (*Store)(nil)

func limitOf[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

type users struct{ s *Store }

func (r users) FindByAlias(_ context.Context, alias string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.MatchesAlias(alias) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r users) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.users = append(r.s.users, &cp)
	return nil
}

func (r users) List(_ context.Context, limit int) ([]*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*user.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	return limitOf(out, limit), nil
}

type accounts struct{ s *Store }

func (r accounts) ListByUser(_ context.Context, userID uuid.UUID) ([]*account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.byUser(userID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r accounts) FindDefault(_ context.Context, userID uuid.UUID) (*account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.byUser(userID) {
		if a.IsDefault {
			return a, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r accounts) FindAny(_ context.Context, userID uuid.UUID) (*account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if all := r.byUser(userID); len(all) > 0 {
		return all[0], nil
	}
	return nil, account.ErrAccountNotFound
}

func (r accounts) Create(_ context.Context, a *account.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	r.s.accounts = append(r.s.accounts, &cp)
	return nil
}

// byUser must be called with the lock held.
func (r accounts) byUser(userID uuid.UUID) []*account.Account {
	var out []*account.Account
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out
}

type transactions struct{ s *Store }

func (r transactions) Create(_ context.Context, tx *transaction.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *tx
	r.s.transactions = append(r.s.transactions, &cp)
	return nil
}

func (r transactions) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*transaction.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*transaction.Transaction
	for _, tx := range r.s.transactions {
		if tx.UserID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return limitOf(out, limit), nil
}

type loans struct{ s *Store }

func (r loans) Create(_ context.Context, l *loan.Loan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.loans = append(r.s.loans, &cp)
	return nil
}

func (r loans) Get(_ context.Context, id uuid.UUID) (*loan.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.loans {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, loan.ErrLoanNotFound
}

func (r loans) ListByParty(_ context.Context, userID uuid.UUID, limit int) ([]*loan.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*loan.Loan
	for _, l := range r.s.loans {
		if l.LenderID == userID || l.BorrowerID == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return limitOf(out, limit), nil
}

func (r loans) ListOverdueCandidates(_ context.Context, now time.Time) ([]*loan.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*loan.Loan
	for _, l := range r.s.loans {
		if l.IsOverdueAt(now) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r loans) MarkRepaid(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.loans {
		if l.ID != id {
			continue
		}
		if err := l.Repay(at); err != nil {
			return false, nil
		}
		return true, nil
	}
	return false, nil
}

func (r loans) MarkOverdue(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.loans {
		if l.ID != id {
			continue
		}
		if l.Status == loan.StatusRepaid || l.Status == loan.StatusOverdue {
			return false, nil
		}
		l.MarkOverdue()
		return true, nil
	}
	return false, nil
}

type notifications struct{ s *Store }

func (r notifications) Create(_ context.Context, n *notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r notifications) ListByRecipient(
	_ context.Context,
	userID uuid.UUID,
	limit int,
) ([]*notification.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*notification.Notification
	for _, n := range r.s.notifications {
		if n.RecipientID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return limitOf(out, limit), nil
}
