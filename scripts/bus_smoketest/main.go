// bus_smoketest sends one notification request through the configured
// redis or kafka event bus and waits for the worker to store it.
//
// Usage: EVENT_BUS_DRIVER=kafka go run ./scripts/bus_smoketest
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	infra_eventbus "github.com/amirasaad/finhub/infra/eventbus"
	"github.com/amirasaad/finhub/infra/repository/memory"
	"github.com/amirasaad/finhub/pkg/config"
	"github.com/amirasaad/finhub/pkg/domain/events"
	"github.com/amirasaad/finhub/pkg/domain/notification"
	"github.com/amirasaad/finhub/pkg/eventbus"
	notificationsvc "github.com/amirasaad/finhub/pkg/service/notification"
	"github.com/google/uuid"
)

// RunSmokeTest round-trips a NotificationRequested event through the
// configured transport.
func RunSmokeTest(cfg *config.App, logger *slog.Logger) error {
	bus, err := openBus(cfg, logger)
	if err != nil {
		return err
	}

	store := memory.New()
	notificationsvc.Register(bus, notificationsvc.New(store, nil, logger), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer func() { _ = bus.Close(context.Background()) }()

	recipient := uuid.New()
	req := events.NewNotificationRequested(recipient, uuid.New(), notification.KindLoanCreated, "smoke test")
	if err := bus.Emit(ctx, req); err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	logger.Info("produced", "recipient_id", recipient)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return errors.New("notification was not stored before the deadline")
		case <-ticker.C:
			ns, err := store.NotificationRepository().ListByRecipient(ctx, recipient, 1)
			if err != nil {
				return err
			}
			if len(ns) == 1 {
				logger.Info("bus smoke test passed", "notification_id", ns[0].ID)
				return nil
			}
		}
	}
}

func openBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, error) {
	busCfg := cfg.EventBus
	if busCfg == nil {
		return nil, errors.New("EVENT_BUS_* configuration is missing")
	}
	switch strings.ToLower(busCfg.Driver) {
	case "redis":
		r := busCfg.Redis
		if r == nil {
			r = &config.Redis{}
		}
		return infra_eventbus.NewWithRedis(infra_eventbus.RedisEventBusConfig{
			URL:          r.URL,
			Stream:       r.Stream + ".smoke",
			Group:        r.Group + "-smoke",
			PoolSize:     r.PoolSize,
			DialTimeout:  r.DialTimeout,
			ReadTimeout:  r.ReadTimeout,
			WriteTimeout: r.WriteTimeout,
		}, logger)
	case "kafka":
		k := busCfg.Kafka
		if k == nil {
			k = &config.Kafka{}
		}
		return infra_eventbus.NewWithKafka(k.Brokers, logger, &infra_eventbus.KafkaEventBusConfig{
			GroupID:      k.GroupID + "-smoke",
			TopicPrefix:  k.TopicPrefix + ".smoke",
			SASLUsername: k.SASLUsername,
			SASLPassword: k.SASLPassword,
		})
	default:
		return nil, fmt.Errorf("EVENT_BUS_DRIVER must be redis or kafka, got %q", busCfg.Driver)
	}
}

// main runs the smoke test and exits non-zero on failure.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := RunSmokeTest(cfg, logger); err != nil {
		logger.Error("bus smoke test failed", "error", err)
		os.Exit(1)
	}
}
