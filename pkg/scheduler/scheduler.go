// Package scheduler triggers the overdue-loan sweep on a cron schedule
// evaluated in UTC.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/finhub/pkg/config"
	loansvc "github.com/amirasaad/finhub/pkg/service/loan"
	"github.com/robfig/cron/v3"
)

const (
	DefaultSpec         = "0 0 * * *"
	DefaultSweepTimeout = 10 * time.Minute
)

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("scheduler already started")

// Sweeper runs one overdue sweep.
type Sweeper interface {
	SweepOverdue(ctx context.Context, now time.Time) (loansvc.SweepResult, error)
}

// Scheduler holds at most one trigger registration.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	schedule cron.Schedule
	timeout  time.Duration
	enabled  bool
	sweeper  Sweeper
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
}

// New validates the cron spec. A nil cfg uses the defaults.
func New(cfg *config.Scheduler, sweeper Sweeper, logger *slog.Logger) (*Scheduler, error) {
	if cfg == nil {
		cfg = &config.Scheduler{Enabled: true}
	}
	if logger == nil {
		logger = slog.Default()
	}
	spec := cfg.Cron
	if spec == "" {
		spec = DefaultSpec
	}
	timeout := cfg.SweepTimeout
	if timeout <= 0 {
		timeout = DefaultSweepTimeout
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("scheduler: invalid cron spec %q: %w", spec, err)
	}

	logger = logger.With("component", "scheduler")
	cl := cronLogger{logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		spec:     spec,
		schedule: schedule,
		timeout:  timeout,
		enabled:  cfg.Enabled,
		sweeper:  sweeper,
		logger:   logger,
	}, nil
}

// Start registers the sweep and starts the cron loop. It may be called
// once; later calls return ErrAlreadyStarted. When the scheduler is disabled
// nothing is registered.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	if !s.enabled {
		s.logger.Info("scheduler disabled; overdue sweep runs only on demand")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.fire); err != nil {
		return fmt.Errorf("scheduler: register sweep: %w", err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", "spec", s.spec, "next_run", s.Next(time.Now()))
	return nil
}

// Stop removes the pending trigger. A sweep already running is left to
// finish on its own.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || !s.enabled {
		return
	}
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

// Next returns the first firing strictly after from, in UTC.
func (s *Scheduler) Next(from time.Time) time.Time {
	return s.schedule.Next(from.UTC())
}

func (s *Scheduler) fire() {
	now := time.Now().UTC()
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.logger.Info("overdue sweep triggered", "at", now)
	res, err := s.sweeper.SweepOverdue(ctx, now)
	if err != nil {
		s.logger.Error("scheduled overdue sweep failed", "error", err, "transitioned", res.Transitioned)
		return
	}
	s.logger.Info("scheduled overdue sweep done", "transitioned", res.Transitioned, "failed", res.Failed)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
