package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Config holds display settings for notification messages.
type Config struct {
	Locale string `env:"DISPLAY_LOCALE" envDefault:"en" validate:"oneof=en es"`
}

// Builder constructs notifications. It is safe for concurrent use.
type Builder struct {
	locale language.Tag
	now    func() time.Time
	newID  func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLocale sets the display locale of generated messages.
func WithLocale(tag language.Tag) Option {
	return func(b *Builder) { b.locale = tag }
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator overrides the notification ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(b *Builder) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// NewBuilder creates a Builder. IDs default to UUIDv7 so they sort by creation time.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		locale: English,
		now:    time.Now,
		newID:  func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBuilderFromConfig creates a Builder using the configured display locale.
func NewBuilderFromConfig(cfg Config, opts ...Option) *Builder {
	return NewBuilder(append([]Option{WithLocale(ParseLocale(cfg.Locale))}, opts...)...)
}

// Build returns the notification for an event. The boolean is false when the
// event type is not recognised and nothing should be sent.
func (b *Builder) Build(eventType EventType, orderRef string) (Notification, bool) {
	r, ok := rules[eventType]
	if !ok {
		return Notification{}, false
	}

	p := message.NewPrinter(b.locale, message.Catalog(messages))

	ref := strings.TrimSpace(orderRef)
	display := ref
	if display == "" {
		display = p.Sprintf(unknownOrderKey)
	}

	return Notification{
		ID:             b.newID(),
		Kind:           r.kind,
		Message:        p.Sprintf(r.key, display),
		OrderReference: ref,
		CreatedAt:      b.now().UTC(),
	}, true
}
