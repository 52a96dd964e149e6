package initializer

import (
	infra_eventbus "github.com/amirasaad/finhub/infra/eventbus"
	"github.com/amirasaad/finhub/pkg/config"
)

func toRedisBusConfig(cfg *config.Redis) infra_eventbus.RedisEventBusConfig {
	if cfg == nil {
		return infra_eventbus.RedisEventBusConfig{}
	}
	return infra_eventbus.RedisEventBusConfig{
		URL:           cfg.URL,
		Stream:        cfg.Stream,
		Group:         cfg.Group,
		PoolSize:      cfg.PoolSize,
		DialTimeout:   cfg.DialTimeout,
		ReadTimeout:   cfg.ReadTimeout,
		WriteTimeout:  cfg.WriteTimeout,
		PublishBuffer: cfg.PublishBuffer,
		ClaimMinIdle:  cfg.ClaimMinIdle,
	}
}

// toKafkaBusConfig returns the broker list and the bus options.
func toKafkaBusConfig(cfg *config.Kafka) (string, *infra_eventbus.KafkaEventBusConfig) {
	out := infra_eventbus.DefaultKafkaEventBusConfig()
	if cfg == nil {
		return "", out
	}
	if cfg.GroupID != "" {
		out.GroupID = cfg.GroupID
	}
	if cfg.TopicPrefix != "" {
		out.TopicPrefix = cfg.TopicPrefix
	}
	out.SASLUsername = cfg.SASLUsername
	out.SASLPassword = cfg.SASLPassword
	return cfg.Brokers, out
}
