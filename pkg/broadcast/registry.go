package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/orderrelay/pkg/logger"
)

// Handle identifies one registered subscriber.
type Handle struct {
	id   string
	sink Sink
}

// ID returns the registry-assigned identifier.
func (h *Handle) ID() string {
	return h.id
}

// Result summarises a single Broadcast call.
type Result struct {
	Attempted int // handles present in the snapshot
	Delivered int // handles whose write succeeded
	Pruned    int // handles removed because their write failed
}

// Registry tracks connected subscribers. All methods are safe for concurrent use.
type Registry struct {
	handles map[*Handle]struct{}
	mu      sync.Mutex
	logger  *slog.Logger
	onSize  func(int)
	sizeMu  sync.Mutex
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger for the Registry.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSizeCallback registers a function called with the subscriber count
// after every registration change. Calls are serialized and each one reads
// the current count, so the last call always reports the latest size.
// It runs outside the registry lock and may call Len.
func WithSizeCallback(fn func(size int)) RegistryOption {
	return func(r *Registry) { r.onSize = fn }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		handles: make(map[*Handle]struct{}),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores sink under a new handle and returns it.
func (r *Registry) Register(sink Sink) *Handle {
	h := &Handle{id: uuid.NewString(), sink: sink}

	r.mu.Lock()
	r.handles[h] = struct{}{}
	r.mu.Unlock()

	r.notifySize()
	return h
}

// Unregister removes h. It reports whether h was present; removing a handle
// that is already gone is a no-op. The sink is closed on actual removal when
// it implements io.Closer.
func (r *Registry) Unregister(h *Handle) bool {
	if h == nil {
		return false
	}

	r.mu.Lock()
	_, ok := r.handles[h]
	if ok {
		delete(r.handles, h)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}

	if c, isCloser := h.sink.(io.Closer); isCloser {
		_ = c.Close()
	}
	r.notifySize()
	return true
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Broadcast marshals v to JSON once and writes it to every registered sink.
// Failed sinks are unregistered; they never stop delivery to the others.
// The only error returned is a serialization failure, in which case nothing is written.
func (r *Registry) Broadcast(ctx context.Context, v any) (Result, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Result{}, errors.Join(ErrMarshalPayload, err)
	}
	return r.BroadcastRaw(ctx, payload), nil
}

// BroadcastRaw writes an already serialized payload to every registered sink.
func (r *Registry) BroadcastRaw(ctx context.Context, payload []byte) Result {
	r.mu.Lock()
	snapshot := make([]*Handle, 0, len(r.handles))
	for h := range r.handles {
		snapshot = append(snapshot, h)
	}
	r.mu.Unlock()

	res := Result{Attempted: len(snapshot)}
	for _, h := range snapshot {
		if err := h.sink.Write(ctx, payload); err != nil {
			if r.Unregister(h) {
				res.Pruned++
			}
			r.logger.LogAttrs(ctx, slog.LevelDebug, "subscriber pruned after failed write",
				logger.SubscriberID(h.id),
				logger.Error(err),
			)
			continue
		}
		res.Delivered++
	}
	return res
}

func (r *Registry) notifySize() {
	if r.onSize == nil {
		return
	}
	r.sizeMu.Lock()
	defer r.sizeMu.Unlock()
	r.onSize(r.Len())
}
