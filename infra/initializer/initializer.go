package initializer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/finhub/infra"
	infra_eventbus "github.com/amirasaad/finhub/infra/eventbus"
	infra_repository "github.com/amirasaad/finhub/infra/repository"
	"github.com/amirasaad/finhub/infra/repository/memory"
	"github.com/amirasaad/finhub/pkg/app"
	"github.com/amirasaad/finhub/pkg/config"
	"github.com/amirasaad/finhub/pkg/eventbus"
	"github.com/amirasaad/finhub/pkg/repository"
)

// InitializeDependencies builds the logger, the store and the event bus.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)

	repos, closeStore, err := initStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	bus, err := initEventBus(cfg, logger)
	if err != nil {
		if closeStore != nil {
			_ = closeStore()
		}
		return nil, err
	}

	return &app.Deps{
		Repos:      repos,
		EventBus:   bus,
		Logger:     logger,
		CloseStore: closeStore,
	}, nil
}

// initStore selects the repository provider. With the postgres driver and no
// URL the unavailable gateway is installed so the server still starts and
// every store call fails fast.
func initStore(cfg *config.App, logger *slog.Logger) (repository.Provider, func() error, error) {
	dbCfg := cfg.DB
	if dbCfg == nil {
		dbCfg = &config.DB{Driver: "postgres"}
	}

	switch strings.ToLower(strings.TrimSpace(dbCfg.Driver)) {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.New(), nil, nil
	case "", "postgres":
		if dbCfg.Url == "" {
			logger.Warn("DATABASE_URL is not set; store calls will fail")
			gw := infra_repository.UnavailableGateway{Reason: infra.ErrDatabaseURLMissing.Error()}
			return infra_repository.NewStore(gw), nil, nil
		}
		db, err := infra.NewDBConnection(dbCfg, cfg.Env)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		gw := infra_repository.NewGormGateway(db, dbCfg.QueryTimeout, logger)
		logger.Info("database connected", "max_open_conns", dbCfg.MaxOpenConns)
		return infra_repository.NewStore(gw), sqlDB.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}
}

// initEventBus builds the configured bus. A redis or kafka bus that cannot
// connect falls back to the memory bus; an unknown driver is an error.
func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, error) {
	busCfg := cfg.EventBus
	if busCfg == nil {
		busCfg = &config.EventBus{}
	}
	memoryBus := func() eventbus.Bus {
		return infra_eventbus.NewWithMemoryAsync(logger, busCfg.QueueSize, busCfg.Workers)
	}

	switch strings.ToLower(strings.TrimSpace(busCfg.Driver)) {
	case "", "memory":
		return memoryBus(), nil
	case "redis":
		redisCfg := toRedisBusConfig(busCfg.Redis)
		if redisCfg.URL == "" {
			return nil, fmt.Errorf("event bus driver redis requires EVENT_BUS_REDIS_URL")
		}
		bus, err := infra_eventbus.NewWithRedis(redisCfg, logger)
		if err != nil {
			logger.Warn("redis event bus unavailable; falling back to memory", "error", err)
			return memoryBus(), nil
		}
		return bus, nil
	case "kafka":
		brokers, kafkaCfg := toKafkaBusConfig(busCfg.Kafka)
		if len(config.SplitList(brokers)) == 0 {
			return nil, fmt.Errorf("event bus driver kafka requires EVENT_BUS_KAFKA_BROKERS")
		}
		bus, err := infra_eventbus.NewWithKafka(brokers, logger, kafkaCfg)
		if err != nil {
			logger.Warn("kafka event bus unavailable; falling back to memory", "error", err)
			return memoryBus(), nil
		}
		return bus, nil
	default:
		return nil, fmt.Errorf("unsupported event bus driver %q", busCfg.Driver)
	}
}
