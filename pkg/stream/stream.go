package stream

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/orderrelay/pkg/broadcast"
	"github.com/dmitrymomot/orderrelay/pkg/logger"
)

// Registry is where each connected client is registered for the lifetime of
// its request.
type Registry interface {
	Register(sink broadcast.Sink) *broadcast.Handle
	Unregister(h *broadcast.Handle) bool
}

// Config holds stream settings.
type Config struct {
	KeepAlive time.Duration `env:"STREAM_KEEPALIVE" envDefault:"15s"`
	Buffer    int           `env:"STREAM_BUFFER" envDefault:"32" validate:"min=1"`
}

// Handler serves live notifications as server-sent events.
//
// Plain clients (EventSource) receive one "notification" event per payload
// with the JSON notification as data. Datastar clients, detected by the
// Datastar-Request header or a "datastar" query parameter, receive the same
// payload as a signal patch under the configured signal name.
type Handler struct {
	registry  Registry
	logger    *slog.Logger
	keepAlive time.Duration
	buffer    int
	signal    string
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithKeepAlive sets the interval of keep-alive writes. Zero disables them.
func WithKeepAlive(d time.Duration) Option {
	return func(h *Handler) { h.keepAlive = d }
}

// WithBuffer sets how many payloads may queue for a client before it is
// treated as too slow and dropped.
func WithBuffer(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithSignalName sets the Datastar signal that receives notifications.
func WithSignalName(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.signal = name
		}
	}
}

// NewHandler creates a stream handler backed by registry.
func NewHandler(registry Registry, opts ...Option) *Handler {
	h := &Handler{
		registry:  registry,
		logger:    slog.Default(),
		keepAlive: 15 * time.Second,
		buffer:    32,
		signal:    "notification",
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(logger.Component("stream"))
	return h
}

// NewHandlerFromConfig creates a stream handler from cfg.
func NewHandlerFromConfig(registry Registry, cfg Config, opts ...Option) *Handler {
	return NewHandler(registry, append([]Option{WithKeepAlive(cfg.KeepAlive), WithBuffer(cfg.Buffer)}, opts...)...)
}

type writer interface {
	open() error
	send(payload []byte) error
	ping() error
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	var out writer
	if isDatastar(r) {
		out = &signalWriter{w: w, r: r, signal: h.signal}
	} else {
		out = &eventWriter{w: w, flusher: flusher}
	}

	sink := broadcast.NewChannelSink(h.buffer)
	handle := h.registry.Register(sink)
	defer h.registry.Unregister(handle)

	ctx := r.Context()
	log := h.logger.With(logger.SubscriberID(handle.ID()))
	log.DebugContext(ctx, "subscriber connected", slog.Bool("datastar", isDatastar(r)))

	if err := out.open(); err != nil {
		log.DebugContext(ctx, "failed to open stream", logger.Error(err))
		return
	}

	var tick <-chan time.Time
	if h.keepAlive > 0 {
		t := time.NewTicker(h.keepAlive)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			log.DebugContext(ctx, "subscriber disconnected")
			return
		case payload, ok := <-sink.Messages():
			if !ok {
				log.InfoContext(ctx, "subscriber dropped by registry")
				return
			}
			if err := out.send(payload); err != nil {
				log.DebugContext(ctx, "failed to write notification", logger.Error(err))
				return
			}
		case <-tick:
			if err := out.ping(); err != nil {
				log.DebugContext(ctx, "keep-alive failed, closing stream", logger.Error(err))
				return
			}
		}
	}
}

func isDatastar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true" || r.URL.Query().Has("datastar")
}

// eventWriter writes the text/event-stream wire format directly.
type eventWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (e *eventWriter) open() error {
	hdr := e.w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")
	e.w.WriteHeader(http.StatusOK)
	return e.write("retry: 3000\n\n")
}

func (e *eventWriter) send(payload []byte) error {
	var b strings.Builder
	b.WriteString("event: notification\n")
	for _, line := range bytes.Split(payload, []byte("\n")) {
		b.WriteString("data: ")
		b.Write(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return e.write(b.String())
}

func (e *eventWriter) ping() error {
	return e.write(": keep-alive\n\n")
}

func (e *eventWriter) write(s string) error {
	if _, err := fmt.Fprint(e.w, s); err != nil {
		return err
	}
	e.flusher.Flush()
	return nil
}

// signalWriter patches a Datastar signal with each notification.
type signalWriter struct {
	w      http.ResponseWriter
	r      *http.Request
	signal string
	sse    *datastar.ServerSentEventGenerator
}

func (s *signalWriter) open() error {
	s.sse = datastar.NewSSE(s.w, s.r)
	return nil
}

func (s *signalWriter) send(payload []byte) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "{%q:", s.signal)
	b.Write(payload)
	b.WriteByte('}')
	return s.sse.PatchSignals(b.Bytes())
}

func (s *signalWriter) ping() error {
	return s.sse.PatchSignals([]byte("{}"))
}
