package queue

import "context"

// Handler processes one raw message. It must not return errors: the message
// is acknowledged after Handle returns regardless of what happened inside.
type Handler interface {
	Handle(ctx context.Context, payload []byte)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, payload []byte)

func (f HandlerFunc) Handle(ctx context.Context, payload []byte) { f(ctx, payload) }
