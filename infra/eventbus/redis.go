package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/finhub/pkg/domain/events"
	"github.com/amirasaad/finhub/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

// RedisEventBusConfig holds connection settings for the redis transport.
type RedisEventBusConfig struct {
	URL          string
	Stream       string
	Group        string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// PublishBuffer bounds events waiting to be written to the stream.
	PublishBuffer int
	// ClaimMinIdle is how long a delivered message may stay unacknowledged
	// before another consumer takes it over.
	ClaimMinIdle time.Duration
}

const (
	defaultPublishBuffer = 256
	defaultClaimMinIdle  = time.Minute
	defaultWriteTimeout  = 3 * time.Second
)

// RedisEventBus carries events on one Redis stream read by a consumer group.
// Emit only buffers; a background publisher writes to the stream. Messages
// are acknowledged after handling and messages left pending by a dead
// consumer are claimed after ClaimMinIdle, so delivery is at-least-once
// from the moment XADD succeeds. Failed messages are copied to the
// "<stream>-DLQ" stream.
type RedisEventBus struct {
	client   *redis.Client
	stream   string
	group    string
	consumer string

	handlers map[events.EventType][]eventbus.HandlerFunc
	mu       sync.RWMutex
	started  sync.Once

	outbox       chan []byte
	outboxMu     sync.RWMutex
	closed       bool
	publishDone  chan struct{}
	writeTimeout time.Duration
	claimMinIdle time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *slog.Logger
}

// NewWithRedis connects to Redis and makes sure the stream and group exist.
func NewWithRedis(cfg RedisEventBusConfig, logger *slog.Logger) (*RedisEventBus, error) {
	if cfg.URL == "" || cfg.Stream == "" || cfg.Group == "" {
		return nil, fmt.Errorf("redis event bus: url, stream, and group are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opt.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opt.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opt)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}

	err = client.XGroupCreateMkStream(pingCtx, cfg.Stream, cfg.Group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		_ = client.Close()
		return nil, fmt.Errorf("redis event bus: create group: %w", err)
	}

	buffer := cfg.PublishBuffer
	if buffer <= 0 {
		buffer = defaultPublishBuffer
	}
	claimMinIdle := cfg.ClaimMinIdle
	if claimMinIdle <= 0 {
		claimMinIdle = defaultClaimMinIdle
	}
	writeTimeout := opt.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	host, _ := os.Hostname()
	ctx, cancel := context.WithCancel(context.Background())
	bus := &RedisEventBus{
		client:       client,
		stream:       cfg.Stream,
		group:        cfg.Group,
		consumer:     fmt.Sprintf("%s-%d", host, os.Getpid()),
		handlers:     make(map[events.EventType][]eventbus.HandlerFunc),
		outbox:       make(chan []byte, buffer),
		publishDone:  make(chan struct{}),
		writeTimeout: writeTimeout,
		claimMinIdle: claimMinIdle,
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger.With("component", "redis-event-bus"),
	}
	go bus.publish()
	return bus, nil
}

// Emit buffers the event for the publisher and returns without a Redis
// round trip. A full buffer returns eventbus.ErrQueueFull.
func (b *RedisEventBus) Emit(_ context.Context, event events.Event) error {
	envBytes, err := encodeEnvelope(event)
	if err != nil {
		return fmt.Errorf("redis event bus: %w", err)
	}
	b.outboxMu.RLock()
	defer b.outboxMu.RUnlock()
	if b.closed {
		return eventbus.ErrClosed
	}
	select {
	case b.outbox <- envBytes:
		return nil
	default:
		b.logger.Warn("publish buffer full", "type", event.Type())
		return eventbus.ErrQueueFull
	}
}

// publish writes buffered events to the stream until the outbox is closed.
func (b *RedisEventBus) publish() {
	defer close(b.publishDone)
	for envBytes := range b.outbox {
		ctx, cancel := context.WithTimeout(context.Background(), b.writeTimeout)
		err := b.client.XAdd(ctx, &redis.XAddArgs{
			Stream: b.stream,
			Values: map[string]any{"event": string(envBytes)},
		}).Err()
		cancel()
		if err != nil {
			b.logger.Error("failed to publish event", "error", err, "stream", b.stream)
			continue
		}
		b.logger.Debug("event published", "stream", b.stream)
	}
}

// Register adds handler for eventType and starts the consumer on first use.
func (b *RedisEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()

	b.started.Do(func() {
		b.wg.Add(1)
		go b.consume()
		b.logger.Info("consumer started", "stream", b.stream, "group", b.group, "consumer", b.consumer)
	})
}

// Close flushes buffered events, stops the consumer and closes the client.
// A message being handled when Close is called stays pending and is claimed
// by another consumer of the group.
func (b *RedisEventBus) Close(ctx context.Context) error {
	b.outboxMu.Lock()
	if !b.closed {
		b.closed = true
		close(b.outbox)
	}
	b.outboxMu.Unlock()
	select {
	case <-b.publishDone:
	case <-ctx.Done():
		b.logger.Warn("closing with unpublished events", "pending", len(b.outbox))
	}

	b.cancel()
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
	return b.client.Close()
}

func (b *RedisEventBus) consume() {
	defer b.wg.Done()
	b.claimStale()
	lastClaim := time.Now()
	for {
		if b.ctx.Err() != nil {
			return
		}
		if time.Since(lastClaim) >= b.claimMinIdle {
			b.claimStale()
			lastClaim = time.Now()
		}
		res, err := b.client.XReadGroup(b.ctx, &redis.XReadGroupArgs{
			Group:    b.group,
			Consumer: b.consumer,
			Streams:  []string{b.stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if b.ctx.Err() != nil {
				return
			}
			if !errors.Is(err, redis.Nil) {
				b.logger.Error("error reading from stream", "error", err)
				time.Sleep(time.Second)
			}
			continue
		}
		for _, stream := range res {
			for _, msg := range stream.Messages {
				b.handleMessage(msg)
			}
		}
	}
}

// claimStale takes over messages that were delivered to a consumer of the
// group and left unacknowledged for at least claimMinIdle.
func (b *RedisEventBus) claimStale() {
	start := "0-0"
	for b.ctx.Err() == nil {
		msgs, next, err := b.client.XAutoClaim(b.ctx, &redis.XAutoClaimArgs{
			Stream:   b.stream,
			Group:    b.group,
			Consumer: b.consumer,
			MinIdle:  b.claimMinIdle,
			Start:    start,
			Count:    10,
		}).Result()
		if err != nil {
			if b.ctx.Err() == nil {
				b.logger.Error("failed to claim pending messages", "error", err)
			}
			return
		}
		if len(msgs) > 0 {
			b.logger.Info("claimed pending messages", "count", len(msgs))
		}
		for _, msg := range msgs {
			b.handleMessage(msg)
		}
		if next == "" || next == "0-0" {
			return
		}
		start = next
	}
}

func (b *RedisEventBus) handleMessage(msg redis.XMessage) {
	ok := b.process(msg)
	if !ok {
		b.pushToDLQ(msg.Values)
	}
	if err := b.client.XAck(b.ctx, b.stream, b.group, msg.ID).Err(); err != nil {
		b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
	}
}

// process reports whether every handler succeeded.
func (b *RedisEventBus) process(msg redis.XMessage) (ok bool) {
	raw, isString := msg.Values["event"].(string)
	if !isString {
		b.logger.Error("message without event field", "msg_id", msg.ID)
		return false
	}
	eventType, evt, err := decodeEnvelope([]byte(raw))
	if err != nil {
		b.logger.Error("failed to decode message", "error", err, "msg_id", msg.ID)
		return false
	}

	b.mu.RLock()
	handlers := append([]eventbus.HandlerFunc{}, b.handlers[eventType]...)
	b.mu.RUnlock()

	ok = true
	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("handler panic recovered", "panic", r, "event_type", eventType)
					ok = false
				}
			}()
			if err := handler(b.ctx, evt); err != nil {
				b.logger.Error("handler error", "error", err, "event_type", eventType)
				ok = false
			}
		}()
	}
	return ok
}

// pushToDLQ copies the raw message to the dead-letter stream.
func (b *RedisEventBus) pushToDLQ(values map[string]any) {
	dlqStream := b.stream + "-DLQ"
	if err := b.client.XAdd(b.ctx, &redis.XAddArgs{Stream: dlqStream, Values: values}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlqStream)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlqStream)
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
