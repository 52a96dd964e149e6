package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/finhub/infra/initializer"
	"github.com/amirasaad/finhub/pkg/app"
	"github.com/amirasaad/finhub/pkg/config"
	"github.com/amirasaad/finhub/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	fiberApp, a, err := newServer(cfg)
	if err != nil {
		return err
	}
	logger := a.Deps.Logger

	if err := a.Start(); err != nil {
		return fmt.Errorf("failed to start background jobs: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() { listenErr <- fiberApp.Listen(addr) }()

	select {
	case err := <-listenErr:
		if err != nil {
			logger.Error("server stopped", "error", err)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(err, a.Shutdown(shutdownCtx))
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return shutdown(shutdownCtx, fiberApp, a, logger)
}

// newServer builds the dependencies, the application and its HTTP surface.
func newServer(cfg *config.App) (*fiber.App, *app.App, error) {
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a, err := app.New(deps, cfg)
	if err != nil {
		_ = deps.EventBus.Close(context.Background())
		if deps.CloseStore != nil {
			_ = deps.CloseStore()
		}
		return nil, nil, fmt.Errorf("failed to build application: %w", err)
	}
	return webapi.SetupApp(a), a, nil
}

// shutdown stops HTTP intake before the application drains its bus and
// closes the store.
func shutdown(ctx context.Context, fiberApp *fiber.App, a *app.App, logger *slog.Logger) error {
	var errs []error
	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		logger.Warn("http shutdown incomplete", "error", err)
		errs = append(errs, err)
	}
	if err := a.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
