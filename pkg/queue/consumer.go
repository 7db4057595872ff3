package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/orderrelay/pkg/logger"
	"github.com/dmitrymomot/orderrelay/pkg/requestid"
)

// StreamReader is the subset of the Redis client used by Consumer.
type StreamReader interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XAutoClaim(ctx context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd
}

// ConsumerOption is a functional option for configuring a consumer
type ConsumerOption func(*Consumer)

// WithConsumerLogger sets the logger for the consumer
func WithConsumerLogger(l *slog.Logger) ConsumerOption {
	return func(c *Consumer) {
		if l != nil {
			c.logger = l
		}
	}
}

// Consumer reads a Redis stream through a consumer group and passes each
// message to the handler, one at a time, in stream order.
type Consumer struct {
	client  StreamReader
	handler Handler
	cfg     Config
	logger  *slog.Logger

	// mu keeps handler calls one at a time across Run and Reclaim.
	mu sync.Mutex
}

// NewConsumer creates a consumer. Zero-valued fields of cfg fall back to
// DefaultConfig.
func NewConsumer(client StreamReader, handler Handler, cfg Config, opts ...ConsumerOption) (*Consumer, error) {
	if client == nil {
		return nil, ErrClientNil
	}
	if handler == nil {
		return nil, ErrHandlerNil
	}

	def := DefaultConfig()
	if cfg.Stream == "" {
		cfg.Stream = def.Stream
	}
	if cfg.Group == "" {
		cfg.Group = def.Group
	}
	if cfg.PayloadField == "" {
		cfg.PayloadField = def.PayloadField
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = def.ErrorBackoff
	}
	if cfg.ReclaimIdle <= 0 {
		cfg.ReclaimIdle = def.ReclaimIdle
	}
	if cfg.Consumer == "" {
		cfg.Consumer = defaultConsumerName()
	}

	c := &Consumer{
		client:  client,
		handler: handler,
		cfg:     cfg,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(
		logger.Component("consumer"),
		slog.String("stream", cfg.Stream),
		slog.String("group", cfg.Group),
		slog.String("consumer", cfg.Consumer),
	)
	return c, nil
}

// Name returns the consumer name within the group.
func (c *Consumer) Name() string {
	return c.cfg.Consumer
}

// Run consumes until ctx is canceled. Messages left pending by a previous run
// of the same consumer are processed first. It returns nil on cancellation and
// an error only when the consumer group cannot be created.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ensureGroup(ctx); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "consumer started")
	defer c.logger.Info("consumer stopped")

	// "0" replays this consumer's pending entries; ">" asks for new ones.
	cursor := "0"
	for {
		if ctx.Err() != nil {
			return nil
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.Consumer,
			Streams:  []string{c.cfg.Stream, cursor},
			Count:    c.cfg.BatchSize,
			Block:    c.cfg.Block,
		}).Result()

		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			c.logger.ErrorContext(ctx, "failed to read from stream", logger.Error(err))
			if !c.wait(ctx, c.cfg.ErrorBackoff) {
				return nil
			}
			continue
		}

		n := 0
		for _, s := range streams {
			for _, msg := range s.Messages {
				c.process(ctx, msg)
				n++
			}
		}

		if cursor == "0" && n == 0 {
			cursor = ">"
		}
	}
}

func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return errors.Join(ErrCreateGroup, err)
	}
	return nil
}

// process hands one message to the handler and acknowledges it.
// Messages without a payload are acknowledged and dropped.
func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	log := c.logger.With(logger.MessageID(msg.ID))
	if rid, ok := msg.Values[RequestIDField].(string); ok && requestid.Valid(rid) {
		ctx = requestid.WithContext(ctx, rid)
	}

	payload, ok := payloadBytes(msg.Values[c.cfg.PayloadField])
	if !ok {
		log.WarnContext(ctx, "dropping stream message without payload", slog.String("field", c.cfg.PayloadField))
	} else {
		start := time.Now()
		c.mu.Lock()
		c.handler.Handle(ctx, payload)
		c.mu.Unlock()
		log.DebugContext(ctx, "stream message handled", logger.Duration(time.Since(start)))
	}

	// Ack must survive shutdown so a handled message is not replayed.
	if err := c.client.XAck(context.WithoutCancel(ctx), c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
		log.ErrorContext(ctx, "failed to acknowledge stream message", logger.Error(err))
	}
}

func (c *Consumer) wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func payloadBytes(v any) ([]byte, bool) {
	switch p := v.(type) {
	case string:
		return []byte(p), p != ""
	case []byte:
		return p, len(p) > 0
	default:
		return nil, false
	}
}

func defaultConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "orderrelay"
	}
	return fmt.Sprintf("%s-%s", host, uuid.NewString()[:8])
}
