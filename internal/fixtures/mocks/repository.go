// Package mocks holds testify mocks of the repository contracts.
package mocks

import (
	"context"
	"time"

	"github.com/amirasaad/finhub/pkg/domain/loan"
	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/amirasaad/finhub/pkg/domain/user"
	"github.com/amirasaad/finhub/pkg/repository"
	accountrepo "github.com/amirasaad/finhub/pkg/repository/account"
	loanrepo "github.com/amirasaad/finhub/pkg/repository/loan"
	notificationrepo "github.com/amirasaad/finhub/pkg/repository/notification"
	transactionrepo "github.com/amirasaad/finhub/pkg/repository/transaction"
	userrepo "github.com/amirasaad/finhub/pkg/repository/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TestingT is the subset of testing.TB the constructors need.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

// Provider overrides individual repositories of a base provider.
type Provider struct {
	repository.Provider
	Users         userrepo.Repository
	Loans         loanrepo.Repository
	Notifications notificationrepo.Repository
}

func (p *Provider) UserRepository() userrepo.Repository {
	if p.Users != nil {
		return p.Users
	}
	return p.Provider.UserRepository()
}

func (p *Provider) AccountRepository() accountrepo.Repository {
	return p.Provider.AccountRepository()
}

func (p *Provider) TransactionRepository() transactionrepo.Repository {
	return p.Provider.TransactionRepository()
}

func (p *Provider) LoanRepository() loanrepo.Repository {
	if p.Loans != nil {
		return p.Loans
	}
	return p.Provider.LoanRepository()
}

func (p *Provider) NotificationRepository() notificationrepo.Repository {
	if p.Notifications != nil {
		return p.Notifications
	}
	return p.Provider.NotificationRepository()
}

// MockUserRepository is a mock userrepo.Repository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository asserts expectations when the test ends.
func NewMockUserRepository(t TestingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) FindByAlias(ctx context.Context, alias string) (*user.User, error) {
	args := m.Called(ctx, alias)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit int) ([]*user.User, error) {
	args := m.Called(ctx, limit)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

// MockLoanRepository is a mock loanrepo.Repository.
type MockLoanRepository struct {
	mock.Mock
}

// NewMockLoanRepository asserts expectations when the test ends.
func NewMockLoanRepository(t TestingT) *MockLoanRepository {
	m := &MockLoanRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoanRepository) Get(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanRepository) ListByParty(ctx context.Context, userID uuid.UUID, limit int) ([]*loan.Loan, error) {
	args := m.Called(ctx, userID, limit)
	loans, _ := args.Get(0).([]*loan.Loan)
	return loans, args.Error(1)
}

func (m *MockLoanRepository) ListOverdueCandidates(ctx context.Context, now time.Time) ([]*loan.Loan, error) {
	args := m.Called(ctx, now)
	loans, _ := args.Get(0).([]*loan.Loan)
	return loans, args.Error(1)
}

func (m *MockLoanRepository) MarkRepaid(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoanRepository) MarkOverdue(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockNotificationRepository is a mock notificationrepo.Repository.
type MockNotificationRepository struct {
	mock.Mock
}

// NewMockNotificationRepository asserts expectations when the test ends.
func NewMockNotificationRepository(t TestingT) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) ListByRecipient(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID, limit)
	out, _ := args.Get(0).([]*notification.Notification)
	return out, args.Error(1)
}

var (
	_ userrepo.Repository         = (*MockUserRepository)(nil)
	_ loanrepo.Repository         = (*MockLoanRepository)(nil)
	_ notificationrepo.Repository = (*MockNotificationRepository)(nil)
	_ repository.Provider         = (*Provider)(nil)
)
