package main

import (
	"context"
	"sync"

	"github.com/dmitrymomot/orderrelay/pkg/queue"
)

// directPublisher hands published events straight to the router when no
// stream is configured. Events are routed one at a time in arrival order,
// the same as the stream consumer. It never fails.
type directPublisher struct {
	mu      sync.Mutex
	handler queue.Handler
	seq     func() string
}

func newDirectPublisher(handler queue.Handler, seq func() string) *directPublisher {
	return &directPublisher{handler: handler, seq: seq}
}

func (p *directPublisher) Publish(ctx context.Context, payload []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.handler.Handle(context.WithoutCancel(ctx), payload)
	return p.seq(), nil
}
