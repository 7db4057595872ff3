package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/orderrelay/pkg/async"
	"github.com/dmitrymomot/orderrelay/pkg/email"
	"github.com/dmitrymomot/orderrelay/pkg/logger"
)

// Sender is the mail transport used by the Engine.
type Sender interface {
	SendEmail(ctx context.Context, msg email.Message) error
	IsConfigured() bool
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Engine runs delivery attempts. It is safe for concurrent use.
type Engine struct {
	sender   Sender
	policy   RetryPolicy
	logger   *slog.Logger
	observer Observer
	sleep    SleepFunc
	now      func() time.Time

	wg       sync.WaitGroup
	inFlight atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRetryPolicy replaces DefaultRetryPolicy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(e *Engine) { e.policy = p.normalized() }
}

// WithObserver registers an observer for attempts and outcomes.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithSleep replaces the backoff wait. Tests use it to record delays.
func WithSleep(fn SleepFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.sleep = fn
		}
	}
}

// WithClock overrides the time source used for Outcome.Elapsed.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an Engine that sends through sender.
func NewEngine(sender Sender, opts ...Option) *Engine {
	e := &Engine{
		sender:   sender,
		policy:   DefaultRetryPolicy,
		logger:   slog.Default(),
		observer: nopObserver{},
		sleep:    sleepContext,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logger.Component("delivery"))
	return e
}

// IsConfigured reports whether the mail transport can send.
func (e *Engine) IsConfigured() bool {
	return e.sender != nil && e.sender.IsConfigured()
}

// InFlight returns the number of dispatched deliveries not yet finished.
func (e *Engine) InFlight() int {
	return int(e.inFlight.Load())
}

// Attempt delivers req, retrying failed sends according to the policy.
// It blocks through the backoff waits and never panics.
func (e *Engine) Attempt(ctx context.Context, req Request) (out Outcome) {
	start := e.now()
	log := e.logger.With(
		logger.OrderRef(req.OrderReference),
		logger.EventType(req.EventType),
		logger.Recipient(req.RecipientAddress),
	)

	defer func() {
		if r := recover(); r != nil {
			out.State = StateExhaustedRetries
			out.LastError = fmt.Errorf("%w: %v", ErrSendPanicked, r)
			log.ErrorContext(ctx, "delivery aborted by panic", logger.Error(out.LastError))
		}
		out.Elapsed = e.now().Sub(start)
		e.observer.Completed(req, out)
	}()

	if err := req.Validate(); err != nil {
		var verrs ValidationErrors
		fields := []string{}
		if errors.As(err, &verrs) {
			fields = verrs.Fields()
		}
		log.WarnContext(ctx, "delivery rejected: invalid request", logger.Fields(fields...), logger.Error(err))
		return Outcome{State: StateRejected, LastError: err}
	}

	if !e.IsConfigured() {
		log.DebugContext(ctx, "delivery rejected: mail transport is not configured")
		return Outcome{State: StateRejected, LastError: ErrTransportDisabled}
	}

	msg := email.Message{
		To:      req.RecipientAddress,
		Subject: req.Subject,
		HTML:    req.Body.HTML,
		Text:    req.Body.Text,
		Tag:     req.EventType,
	}

	var lastErr error
	for attempt := 1; attempt <= e.policy.MaxAttempts; attempt++ {
		lastErr = e.send(ctx, msg)
		if lastErr == nil {
			log.InfoContext(ctx, "email delivered", logger.Attempt(attempt))
			return Outcome{State: StateDelivered, AttemptsUsed: attempt}
		}

		e.observer.AttemptFailed(req, attempt, lastErr)
		log.WarnContext(ctx, "email send attempt failed", logger.Attempt(attempt), logger.Error(lastErr))

		if attempt == e.policy.MaxAttempts {
			break
		}

		delay := e.policy.Delay(attempt)
		if err := e.sleep(ctx, delay); err != nil {
			lastErr = errors.Join(lastErr, err)
			log.WarnContext(ctx, "delivery retries interrupted", logger.Attempt(attempt), logger.Error(err))
			return Outcome{State: StateExhaustedRetries, AttemptsUsed: attempt, LastError: lastErr}
		}
	}

	log.ErrorContext(ctx, "email delivery failed, retries exhausted",
		logger.Attempt(e.policy.MaxAttempts),
		logger.Error(lastErr),
	)
	return Outcome{State: StateExhaustedRetries, AttemptsUsed: e.policy.MaxAttempts, LastError: lastErr}
}

// send makes one transport call, turning a panic into an error.
func (e *Engine) send(ctx context.Context, msg email.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSendPanicked, r)
		}
	}()
	return e.sender.SendEmail(ctx, msg)
}

// Dispatch starts Attempt in the background and returns immediately.
// The delivery keeps running after ctx is canceled; Wait blocks until all
// dispatched deliveries finish.
func (e *Engine) Dispatch(ctx context.Context, req Request) *async.Future[Outcome] {
	e.wg.Add(1)
	e.inFlight.Add(1)

	return async.Async(context.WithoutCancel(ctx), req, func(ctx context.Context, r Request) (Outcome, error) {
		defer func() {
			e.inFlight.Add(-1)
			e.wg.Done()
		}()
		return e.Attempt(ctx, r), nil
	})
}

// Wait blocks until every dispatched delivery has finished or ctx is done.
// Deliveries still running when ctx ends are abandoned.
func (e *Engine) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(ErrDeliveryInProgress, fmt.Errorf("%d pending: %w", e.InFlight(), ctx.Err()))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
