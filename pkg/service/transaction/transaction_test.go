package transaction_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/finhub/infra/repository/memory"
	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/amirasaad/finhub/pkg/domain/transaction"
	"github.com/amirasaad/finhub/pkg/domain/user"
	accountsvc "github.com/amirasaad/finhub/pkg/service/account"
	transactionsvc "github.com/amirasaad/finhub/pkg/service/transaction"
	usersvc "github.com/amirasaad/finhub/pkg/service/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*transactionsvc.Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	u, err := user.New("user_9", "dan@example.com", "Dan")
	require.NoError(t, err)
	require.NoError(t, store.UserRepository().Create(context.Background(), u))
	users := usersvc.New(store, slog.Default())
	accounts := accountsvc.New(store, users, slog.Default())
	return transactionsvc.New(store, users, accounts, slog.Default()), store
}

func TestCreate_BootstrapsDefaultAccount(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)
	ctx := context.Background()

	tx, err := svc.Create(ctx, "dan@example.com", transactionsvc.CreateInput{
		Amount:   decimal.RequireFromString("42.10"),
		Type:     "expense",
		Category: "food",
	})
	require.NoError(t, err)
	assert.Equal(t, transaction.KindExpense, tx.Kind)
	require.NotNil(t, tx.AccountID)

	def, err := store.AccountRepository().FindDefault(ctx, tx.UserID)
	require.NoError(t, err)
	assert.Equal(t, def.ID, *tx.AccountID)

	second, err := svc.Create(ctx, "user_9", transactionsvc.CreateInput{
		Amount: decimal.NewFromInt(5),
		Type:   "INCOME",
	})
	require.NoError(t, err)
	assert.Equal(t, *tx.AccountID, *second.AccountID)

	accounts, err := store.AccountRepository().ListByUser(ctx, tx.UserID)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), "user_9", transactionsvc.CreateInput{
		Amount: decimal.NewFromInt(1),
		Type:   "transfer",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_UnknownUser(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), "nobody", transactionsvc.CreateInput{
		Amount: decimal.NewFromInt(1),
		Type:   "income",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListForUser(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, "user_9", transactionsvc.CreateInput{
			Amount: decimal.NewFromInt(int64(i + 1)),
			Type:   "income",
		})
		require.NoError(t, err)
	}

	list, err := svc.ListForUser(ctx, "dan@example.com")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].OccurredAt.After(list[i-1].OccurredAt))
	}
}
