package queue_test

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/orderrelay/pkg/logger"
	"github.com/dmitrymomot/orderrelay/pkg/queue"
	"github.com/dmitrymomot/orderrelay/pkg/requestid"
)

type fakeWriter struct {
	args *redis.XAddArgs
	err  error
}

func (w *fakeWriter) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	w.args = a
	return redis.NewStringResult("1700000000000-0", w.err)
}

func TestNewPublisher(t *testing.T) {
	t.Parallel()

	_, err := queue.NewPublisher(nil, queue.DefaultConfig())
	assert.ErrorIs(t, err, queue.ErrClientNil)

	_, err = queue.NewPublisher(&fakeWriter{}, queue.Config{})
	assert.ErrorIs(t, err, queue.ErrStreamRequired)
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	t.Run("appends payload", func(t *testing.T) {
		t.Parallel()
		w := &fakeWriter{}
		p, err := queue.NewPublisher(w, queue.DefaultConfig(), queue.WithPublisherLogger(logger.Discard()))
		require.NoError(t, err)

		id, err := p.Publish(context.Background(), []byte(`{"type":"order.ready"}`))
		require.NoError(t, err)
		assert.Equal(t, "1700000000000-0", id)

		require.NotNil(t, w.args)
		assert.Equal(t, "orders:events", w.args.Stream)
		assert.Equal(t, int64(10000), w.args.MaxLen)
		assert.True(t, w.args.Approx)
		assert.Equal(t, map[string]any{"payload": []byte(`{"type":"order.ready"}`)}, w.args.Values)
	})

	t.Run("carries request id", func(t *testing.T) {
		t.Parallel()
		w := &fakeWriter{}
		p, err := queue.NewPublisher(w, queue.DefaultConfig())
		require.NoError(t, err)

		ctx := requestid.WithContext(context.Background(), "req-7")
		_, err = p.Publish(ctx, []byte("x"))
		require.NoError(t, err)
		values, ok := w.args.Values.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "req-7", values[queue.RequestIDField])
	})

	t.Run("empty payload", func(t *testing.T) {
		t.Parallel()
		p, err := queue.NewPublisher(&fakeWriter{}, queue.DefaultConfig())
		require.NoError(t, err)

		_, err = p.Publish(context.Background(), nil)
		assert.ErrorIs(t, err, queue.ErrPayloadEmpty)
	})

	t.Run("redis error", func(t *testing.T) {
		t.Parallel()
		p, err := queue.NewPublisher(&fakeWriter{err: errors.New("OOM")}, queue.DefaultConfig())
		require.NoError(t, err)

		_, err = p.Publish(context.Background(), []byte("x"))
		assert.ErrorIs(t, err, queue.ErrPublish)
	})
}
