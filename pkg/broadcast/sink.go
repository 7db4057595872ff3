package broadcast

import (
	"context"
	"sync"
)

// Sink is a writable destination for serialized payloads.
// Write must not block for long: the registry calls it synchronously.
type Sink interface {
	Write(ctx context.Context, payload []byte) error
}

// ChannelSink buffers payloads in a channel that a transport goroutine drains.
// A full buffer fails the write instead of blocking the broadcaster.
type ChannelSink struct {
	ch     chan []byte
	closed bool
	mu     sync.RWMutex
}

// NewChannelSink creates a sink with the given buffer size (minimum 1).
func NewChannelSink(bufferSize int) *ChannelSink {
	return &ChannelSink{ch: make(chan []byte, max(bufferSize, 1))}
}

// Write enqueues payload without blocking.
func (s *ChannelSink) Write(_ context.Context, payload []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrSubscriberClosed
	}

	select {
	case s.ch <- payload:
		return nil
	default:
		return ErrSlowSubscriber
	}
}

// Messages returns the channel of buffered payloads.
// It is closed once the sink is closed.
func (s *ChannelSink) Messages() <-chan []byte {
	return s.ch
}

// Close closes the sink. It is idempotent.
func (s *ChannelSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}
