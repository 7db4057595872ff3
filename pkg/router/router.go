package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/orderrelay/pkg/async"
	"github.com/dmitrymomot/orderrelay/pkg/broadcast"
	"github.com/dmitrymomot/orderrelay/pkg/delivery"
	"github.com/dmitrymomot/orderrelay/pkg/email/templates"
	"github.com/dmitrymomot/orderrelay/pkg/logger"
	"github.com/dmitrymomot/orderrelay/pkg/notification"
)

// Event processing statuses reported to the Observer.
const (
	StatusMalformed = "malformed"
	StatusIgnored   = "ignored"
	StatusHandled   = "handled"
	StatusPanicked  = "panicked"
)

// Builder creates the notification for an event.
type Builder interface {
	Build(eventType notification.EventType, orderRef string) (notification.Notification, bool)
}

// Broadcaster pushes a payload to live subscribers.
type Broadcaster interface {
	Broadcast(ctx context.Context, v any) (broadcast.Result, error)
}

// Dispatcher starts an email delivery without waiting for it.
type Dispatcher interface {
	Dispatch(ctx context.Context, req delivery.Request) *async.Future[delivery.Outcome]
}

// Observer is told how each raw message was handled.
type Observer interface {
	EventProcessed(eventType, status string)
	Broadcasted(eventType string, res broadcast.Result)
}

type nopObserver struct{}

func (nopObserver) EventProcessed(string, string)        {}
func (nopObserver) Broadcasted(string, broadcast.Result) {}

// RenderFunc renders the email for an order event.
type RenderFunc func(ctx context.Context, o templates.Order) (templates.Content, error)

// Router dispatches decoded events. It holds no per-event state.
type Router struct {
	builder     Builder
	broadcaster Broadcaster
	dispatcher  Dispatcher
	render      RenderFunc
	emailEvents map[notification.EventType]struct{}
	observer    Observer
	logger      *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEmailEvents replaces the set of event types that trigger an email.
// The default is order.ready and order.preparing.
func WithEmailEvents(types ...string) Option {
	return func(r *Router) {
		r.emailEvents = make(map[notification.EventType]struct{}, len(types))
		for _, t := range types {
			r.emailEvents[notification.EventType(t)] = struct{}{}
		}
	}
}

// WithRenderer replaces the email renderer.
func WithRenderer(fn RenderFunc) Option {
	return func(r *Router) {
		if fn != nil {
			r.render = fn
		}
	}
}

// WithObserver registers an observer for processing statuses.
func WithObserver(o Observer) Option {
	return func(r *Router) {
		if o != nil {
			r.observer = o
		}
	}
}

// New creates a Router.
func New(builder Builder, broadcaster Broadcaster, dispatcher Dispatcher, opts ...Option) *Router {
	r := &Router{
		builder:     builder,
		broadcaster: broadcaster,
		dispatcher:  dispatcher,
		render:      templates.RenderOrder,
		observer:    nopObserver{},
		logger:      slog.Default(),
	}
	WithEmailEvents(string(notification.EventOrderReady), string(notification.EventOrderPreparing))(r)
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("router"))
	return r
}

// Handle processes one raw queue message. Every failure ends in a log line.
func (r *Router) Handle(ctx context.Context, raw []byte) {
	eventType := "unknown"
	defer func() {
		if p := recover(); p != nil {
			r.logger.ErrorContext(ctx, "event handling panicked",
				logger.EventType(eventType),
				logger.Error(fmt.Errorf("panic: %v", p)),
			)
			r.observer.EventProcessed(eventType, StatusPanicked)
		}
	}()

	ev, err := Decode(raw)
	if err != nil {
		r.logger.WarnContext(ctx, "dropping malformed event", logger.Error(err), slog.Int("size", len(raw)))
		r.observer.EventProcessed(eventType, StatusMalformed)
		return
	}
	eventType = string(ev.Type)

	r.HandleEvent(ctx, ev)
}

// HandleEvent processes an already decoded event.
func (r *Router) HandleEvent(ctx context.Context, ev Event) {
	eventType := string(ev.Type)
	log := r.logger.With(logger.EventType(eventType), logger.OrderRef(ev.Data.OrderNumber))

	n, ok := r.builder.Build(ev.Type, ev.Data.OrderNumber)
	if !ok {
		log.DebugContext(ctx, "ignoring unrecognised event type")
		r.observer.EventProcessed(eventType, StatusIgnored)
		return
	}

	res, err := r.broadcaster.Broadcast(ctx, n)
	if err != nil {
		log.ErrorContext(ctx, "failed to broadcast notification", logger.NotificationID(n.ID), logger.Error(err))
	} else {
		log.DebugContext(ctx, "notification broadcast",
			logger.NotificationID(n.ID),
			slog.Int("attempted", res.Attempted),
			slog.Int("delivered", res.Delivered),
			slog.Int("pruned", res.Pruned),
		)
		r.observer.Broadcasted(eventType, res)
	}

	if _, ok := r.emailEvents[ev.Type]; ok {
		r.dispatchEmail(ctx, log, ev)
	}
	r.observer.EventProcessed(eventType, StatusHandled)
}

func (r *Router) dispatchEmail(ctx context.Context, log *slog.Logger, ev Event) {
	if missing := ev.Data.MissingDeliveryFields(); len(missing) > 0 {
		log.WarnContext(ctx, "skipping email delivery: missing required fields", logger.Fields(missing...))
		return
	}

	content, err := r.render(ctx, ev.emailOrder())
	if err != nil {
		log.ErrorContext(ctx, "failed to render order email", logger.Error(err))
		return
	}

	future := r.dispatcher.Dispatch(ctx, delivery.Request{
		RecipientAddress: ev.Data.CustomerEmail,
		CustomerName:     ev.Data.CustomerName,
		OrderReference:   ev.Data.OrderNumber,
		EventType:        string(ev.Type),
		Subject:          content.Subject,
		Body:             delivery.Body{HTML: content.HTML, Text: content.Text},
	})
	if future == nil {
		return
	}

	go func() {
		if _, err := future.Await(); err != nil {
			log.Error("detached email delivery failed", logger.Error(err))
		}
	}()
}
