package config

import (
	"time"
)

type DB struct {
	// Driver selects the store: postgres (remote) or memory (in process).
	Driver          string        `envconfig:"DRIVER" default:"postgres"`
	Url             string        `envconfig:"URL"`
	QueryTimeout    time.Duration `envconfig:"QUERY_TIMEOUT" default:"5s"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
}

type Jwt struct {
	// Secret enables bearer-token checks on administrative routes when set.
	Secret    string `envconfig:"SECRET"`
	AdminRole string `envconfig:"ADMIN_ROLE" default:"admin"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	Stream       string        `envconfig:"STREAM" default:"finhub.events"`
	Group        string        `envconfig:"GROUP" default:"finhub"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
	// PublishBuffer bounds events waiting for XADD.
	PublishBuffer int           `envconfig:"PUBLISH_BUFFER" default:"256"`
	ClaimMinIdle  time.Duration `envconfig:"CLAIM_MIN_IDLE" default:"1m"`
}

type Kafka struct {
	Brokers      string `envconfig:"BROKERS" default:"localhost:9092"`
	GroupID      string `envconfig:"GROUP_ID" default:"finhub"`
	TopicPrefix  string `envconfig:"TOPIC_PREFIX" default:"finhub.events"`
	SASLUsername string `envconfig:"SASL_USERNAME"`
	SASLPassword string `envconfig:"SASL_PASSWORD"`
}

type EventBus struct {
	Driver    string `envconfig:"DRIVER" default:"memory"`
	QueueSize int    `envconfig:"QUEUE_SIZE" default:"256"`
	Workers   int    `envconfig:"WORKERS" default:"4"`
	Redis     *Redis `envconfig:"REDIS"`
	Kafka     *Kafka `envconfig:"KAFKA"`
}

type Scheduler struct {
	Enabled      bool          `envconfig:"ENABLED" default:"true"`
	Cron         string        `envconfig:"CRON" default:"0 0 * * *"`
	SweepTimeout time.Duration `envconfig:"SWEEP_TIMEOUT" default:"10m"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Cors struct {
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[finhub]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"0.0.0.0"`
	Port   int    `envconfig:"PORT" default:"8000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	EventBus  *EventBus  `envconfig:"EVENT_BUS"`
	Scheduler *Scheduler `envconfig:"SCHEDULER"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Cors      *Cors      `envconfig:"CORS"`
}
