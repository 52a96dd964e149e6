//go:build integration

package repository_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/finhub/infra/repository"
	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/amirasaad/finhub/pkg/domain/account"
	"github.com/amirasaad/finhub/pkg/domain/loan"
	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/amirasaad/finhub/pkg/domain/transaction"
	"github.com/amirasaad/finhub/pkg/domain/user"
	"github.com/amirasaad/finhub/pkg/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StoreIntegrationSuite struct {
	suite.Suite
	store *infrarepo.Store
	ctx   context.Context
}

func TestStoreIntegration(t *testing.T) {
	suite.Run(t, new(StoreIntegrationSuite))
}

func (s *StoreIntegrationSuite) SetupSuite() {
	db, _ := testutils.SetupPostgres(s.T())
	s.store = infrarepo.NewStore(infrarepo.NewGormGateway(db, 5*time.Second, slog.Default()))
	s.ctx = context.Background()
}

func (s *StoreIntegrationSuite) newUser(clerkID string) *user.User {
	u, err := user.New(clerkID, clerkID+"@example.com", clerkID)
	s.Require().NoError(err)
	s.Require().NoError(s.store.UserRepository().Create(s.ctx, u))
	return u
}

func (s *StoreIntegrationSuite) TestUsers_AliasAndUniqueness() {
	u := s.newUser("user_it_1")

	for _, alias := range []string{u.ClerkUserID, u.Email} {
		got, err := s.store.UserRepository().FindByAlias(s.ctx, alias)
		s.Require().NoError(err)
		s.Equal(u.ID, got.ID)
	}

	dup, err := user.New("user_it_other", u.Email, "dup")
	s.Require().NoError(err)
	s.ErrorIs(s.store.UserRepository().Create(s.ctx, dup), domain.ErrAlreadyExists)

	_, err = s.store.UserRepository().FindByAlias(s.ctx, "nobody@example.com")
	s.ErrorIs(err, user.ErrUserNotFound)
}

func (s *StoreIntegrationSuite) TestAccountsAndTransactions() {
	u := s.newUser("user_it_2")
	acc := account.NewDefault(u.ID)
	acc.Balance = decimal.RequireFromString("12.50")
	s.Require().NoError(s.store.AccountRepository().Create(s.ctx, acc))

	got, err := s.store.AccountRepository().FindDefault(s.ctx, u.ID)
	s.Require().NoError(err)
	s.True(acc.Balance.Equal(got.Balance))

	for _, amount := range []int64{5, 7} {
		tx, err := transaction.New(u.ID, &acc.ID, transaction.KindExpense, decimal.NewFromInt(amount), "food", "")
		s.Require().NoError(err)
		s.Require().NoError(s.store.TransactionRepository().Create(s.ctx, tx))
		time.Sleep(5 * time.Millisecond)
	}
	txs, err := s.store.TransactionRepository().ListByUser(s.ctx, u.ID, 100)
	s.Require().NoError(err)
	s.Require().Len(txs, 2)
	s.True(txs[0].OccurredAt.After(txs[1].OccurredAt))
}

func (s *StoreIntegrationSuite) TestLoans_ConditionalTransitions() {
	lender := s.newUser("user_it_lender")
	borrower := s.newUser("user_it_borrower")
	l, err := loan.New(lender.ID, borrower.ID, decimal.NewFromInt(100), time.Now().Add(-24*time.Hour))
	s.Require().NoError(err)
	repo := s.store.LoanRepository()
	s.Require().NoError(repo.Create(s.ctx, l))

	candidates, err := repo.ListOverdueCandidates(s.ctx, time.Now())
	s.Require().NoError(err)
	s.Contains(loanIDs(candidates), l.ID.String())

	var changed atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.MarkOverdue(s.ctx, l.ID)
			s.NoError(err)
			if ok {
				changed.Add(1)
			}
		}()
	}
	wg.Wait()
	s.Equal(int32(1), changed.Load())

	ok, err := repo.MarkRepaid(s.ctx, l.ID, time.Now())
	s.Require().NoError(err)
	s.True(ok)
	ok, err = repo.MarkRepaid(s.ctx, l.ID, time.Now())
	s.Require().NoError(err)
	s.False(ok)
	ok, err = repo.MarkOverdue(s.ctx, l.ID)
	s.Require().NoError(err)
	s.False(ok)

	got, err := repo.Get(s.ctx, l.ID)
	s.Require().NoError(err)
	s.Equal(loan.StatusRepaid, got.Status)
	s.NotNil(got.RepaidAt)
}

func (s *StoreIntegrationSuite) TestNotifications_NewestFirst() {
	lender := s.newUser("user_it_n_lender")
	borrower := s.newUser("user_it_n_borrower")
	l, err := loan.New(lender.ID, borrower.ID, decimal.NewFromInt(10), time.Now().Add(time.Hour))
	s.Require().NoError(err)
	s.Require().NoError(s.store.LoanRepository().Create(s.ctx, l))

	base := time.Now().UTC()
	for i, kind := range []notification.Kind{notification.KindLoanCreated, notification.KindLoanOverdue} {
		n := notification.New(borrower.ID, l.ID, kind, string(kind), base.Add(time.Duration(i)*time.Second))
		s.Require().NoError(s.store.NotificationRepository().Create(s.ctx, n))
	}
	ns, err := s.store.NotificationRepository().ListByRecipient(s.ctx, borrower.ID, 200)
	s.Require().NoError(err)
	s.Require().Len(ns, 2)
	s.Equal(notification.KindLoanOverdue, ns[0].Kind)
	s.False(ns[0].Read)
}

func loanIDs(loans []*loan.Loan) []string {
	ids := make([]string, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.ID.String())
	}
	return ids
}
