package app_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/finhub/infra/eventbus"
	"github.com/amirasaad/finhub/infra/repository/memory"
	"github.com/amirasaad/finhub/pkg/app"
	"github.com/amirasaad/finhub/pkg/config"
	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/amirasaad/finhub/pkg/domain/user"
	"github.com/amirasaad/finhub/pkg/eventbus"
	"github.com/amirasaad/finhub/pkg/scheduler"
	loansvc "github.com/amirasaad/finhub/pkg/service/loan"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, closeStore func() error) (*app.App, *memory.Store) {
	t.Helper()
	store := memory.New()
	a, err := app.New(&app.Deps{
		Repos:      store,
		EventBus:   infraeventbus.NewWithMemoryAsync(slog.Default(), 16, 1),
		Logger:     slog.Default(),
		CloseStore: closeStore,
	}, &config.App{Scheduler: &config.Scheduler{Enabled: false}})
	require.NoError(t, err)
	return a, store
}

func TestNew_InvalidCron(t *testing.T) {
	_, err := app.New(&app.Deps{
		Repos:    memory.New(),
		EventBus: infraeventbus.NewWithMemoryAsync(nil, 1, 1),
	}, &config.App{Scheduler: &config.Scheduler{Enabled: true, Cron: "every day"}})
	assert.Error(t, err)
}

func TestLoanCreation_NotificationsDrainedOnShutdown(t *testing.T) {
	closed := false
	a, store := newApp(t, func() error { closed = true; return nil })
	require.NoError(t, a.Start())
	ctx := context.Background()

	lender, err := user.New("user_a", "a@example.com", "A")
	require.NoError(t, err)
	borrower, err := user.New("user_b", "b@example.com", "B")
	require.NoError(t, err)
	require.NoError(t, store.UserRepository().Create(ctx, lender))
	require.NoError(t, store.UserRepository().Create(ctx, borrower))

	l, err := a.LoanService.Create(ctx, loansvc.CreateInput{
		LenderID:   lender.ID,
		BorrowerID: borrower.ID,
		Amount:     decimal.NewFromInt(25),
		DueAt:      time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, a.Shutdown(shutdownCtx))
	assert.True(t, closed)

	notes, err := a.NotificationService.ListForUser(ctx, "b@example.com")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, l.ID, notes[0].LoanID)
	assert.Equal(t, notification.KindLoanCreated, notes[0].Kind)

	err = a.Deps.EventBus.Emit(ctx, nil)
	assert.ErrorIs(t, err, eventbus.ErrClosed)
}

func TestShutdown_ReportsStoreCloseError(t *testing.T) {
	a, _ := newApp(t, func() error { return errors.New("pool busy") })

	err := a.Shutdown(context.Background())
	assert.ErrorContains(t, err, "pool busy")
}

func TestStart_Twice(t *testing.T) {
	a, _ := newApp(t, nil)
	require.NoError(t, a.Start())
	assert.ErrorIs(t, a.Start(), scheduler.ErrAlreadyStarted)
	require.NoError(t, a.Shutdown(context.Background()))
}
