package queue

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/orderrelay/pkg/logger"
	"github.com/dmitrymomot/orderrelay/pkg/requestid"
)

// StreamWriter is the subset of the Redis client used by Publisher.
type StreamWriter interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// PublisherOption is a functional option for configuring a publisher
type PublisherOption func(*Publisher)

// WithPublisherLogger sets the logger for the publisher
func WithPublisherLogger(l *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// Publisher appends raw events to the stream.
type Publisher struct {
	client StreamWriter
	stream string
	field  string
	maxLen int64
	logger *slog.Logger
}

// NewPublisher creates a publisher for cfg.Stream.
func NewPublisher(client StreamWriter, cfg Config, opts ...PublisherOption) (*Publisher, error) {
	if client == nil {
		return nil, ErrClientNil
	}
	if cfg.Stream == "" {
		return nil, ErrStreamRequired
	}
	if cfg.PayloadField == "" {
		cfg.PayloadField = DefaultConfig().PayloadField
	}

	p := &Publisher{
		client: client,
		stream: cfg.Stream,
		field:  cfg.PayloadField,
		maxLen: cfg.MaxLen,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// RequestIDField carries the ID of the HTTP request that published an entry.
const RequestIDField = "request_id"

// Publish appends payload and returns the stream entry ID. A request ID found
// in ctx is stored next to the payload.
// The stream is trimmed approximately to MaxLen entries when MaxLen > 0.
func (p *Publisher) Publish(ctx context.Context, payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", ErrPayloadEmpty
	}

	values := map[string]any{p.field: payload}
	if rid := requestid.FromContext(ctx); rid != "" {
		values[RequestIDField] = rid
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: p.maxLen > 0,
		Values: values,
	}).Result()
	if err != nil {
		return "", errors.Join(ErrPublish, err)
	}

	p.logger.DebugContext(ctx, "event published", slog.String("stream", p.stream), logger.MessageID(id))
	return id, nil
}
