// Package app is the composition root: it owns the store, the event bus and
// the sweep scheduler, builds the services on top of them and shuts them down
// in order.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/finhub/pkg/config"
	"github.com/amirasaad/finhub/pkg/eventbus"
	"github.com/amirasaad/finhub/pkg/repository"
	"github.com/amirasaad/finhub/pkg/scheduler"
	"github.com/amirasaad/finhub/pkg/service/account"
	"github.com/amirasaad/finhub/pkg/service/loan"
	"github.com/amirasaad/finhub/pkg/service/notification"
	"github.com/amirasaad/finhub/pkg/service/transaction"
	"github.com/amirasaad/finhub/pkg/service/user"
)

// Deps are the process-wide resources built by the initializer.
type Deps struct {
	Repos    repository.Provider
	EventBus eventbus.Bus
	Logger   *slog.Logger
	// CloseStore releases the store connection pool. May be nil.
	CloseStore func() error
}

type App struct {
	Deps      *Deps
	Config    *config.App
	Scheduler *scheduler.Scheduler

	UserService         *user.Service
	AccountService      *account.Service
	TransactionService  *transaction.Service
	NotificationService *notification.Service
	LoanService         *loan.Service
}

func New(deps *Deps, cfg *config.App) (*App, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	logger := deps.Logger
	app := &App{
		Deps:   deps,
		Config: cfg,
	}

	app.UserService = user.New(deps.Repos, logger)
	app.AccountService = account.New(deps.Repos, app.UserService, logger)
	app.TransactionService = transaction.New(deps.Repos, app.UserService, app.AccountService, logger)
	app.NotificationService = notification.New(deps.Repos, app.UserService, logger)
	app.LoanService = loan.New(
		deps.Repos,
		app.UserService,
		app.NotificationService,
		notification.NewNotifier(deps.EventBus, logger),
		logger,
	)
	app.setupEventBus()

	var schedCfg *config.Scheduler
	if cfg != nil {
		schedCfg = cfg.Scheduler
	}
	sched, err := scheduler.New(schedCfg, app.LoanService, logger)
	if err != nil {
		return nil, err
	}
	app.Scheduler = sched
	return app, nil
}

// Start starts background work that is not driven by requests.
func (a *App) Start() error {
	return a.Scheduler.Start()
}

// Shutdown stops the scheduler without waiting for a running sweep, drains
// the event bus until ctx expires, then closes the store. HTTP intake must
// be stopped by the caller first.
func (a *App) Shutdown(ctx context.Context) error {
	logger := a.Deps.Logger
	a.Scheduler.Stop()

	var errs []error
	if err := a.Deps.EventBus.Close(ctx); err != nil {
		logger.Warn("event bus did not drain", "error", err)
		errs = append(errs, err)
	}
	if a.Deps.CloseStore != nil {
		if err := a.Deps.CloseStore(); err != nil {
			logger.Warn("closing store failed", "error", err)
			errs = append(errs, err)
		}
	}
	logger.Info("application stopped")
	return errors.Join(errs...)
}
