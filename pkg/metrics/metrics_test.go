package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/orderrelay/pkg/broadcast"
	"github.com/dmitrymomot/orderrelay/pkg/delivery"
	"github.com/dmitrymomot/orderrelay/pkg/metrics"
	"github.com/dmitrymomot/orderrelay/pkg/router"
)

var (
	_ delivery.Observer = (*metrics.Collector)(nil)
	_ router.Observer   = (*metrics.Collector)(nil)
)

func TestCollector(t *testing.T) {
	t.Parallel()

	c := metrics.New("test")

	c.SetSubscribers(3)
	c.EventProcessed("order.ready", router.StatusHandled)
	c.EventProcessed("order.ready", router.StatusHandled)
	c.EventProcessed("unknown", router.StatusMalformed)
	c.Broadcasted("order.ready", broadcast.Result{Attempted: 3, Delivered: 2, Pruned: 1})

	req := delivery.Request{EventType: "order.ready"}
	c.AttemptFailed(req, 1, errors.New("timeout"))
	c.Completed(req, delivery.Outcome{State: delivery.StateDelivered, AttemptsUsed: 2, Elapsed: 2 * time.Second})

	body := scrape(t, c)
	assert.Contains(t, body, "test_live_subscribers 3")
	assert.Contains(t, body, `test_events_processed_total{event_type="order.ready",status="handled"} 2`)
	assert.Contains(t, body, `test_events_processed_total{event_type="unknown",status="malformed"} 1`)
	assert.Contains(t, body, `test_broadcast_writes_total{result="delivered"} 2`)
	assert.Contains(t, body, `test_broadcast_writes_total{result="pruned"} 1`)
	assert.Contains(t, body, `test_email_send_failures_total{event_type="order.ready"} 1`)
	assert.Contains(t, body, `test_email_deliveries_total{event_type="order.ready",state="delivered"} 1`)
	assert.Contains(t, body, `test_email_delivery_duration_seconds_count{state="delivered"} 1`)
}

func TestCollector_SubscriberGaugeFollowsRegistry(t *testing.T) {
	t.Parallel()

	c := metrics.New("test")
	reg := broadcast.NewRegistry(broadcast.WithSizeCallback(c.SetSubscribers))

	h1 := reg.Register(broadcast.NewChannelSink(1))
	reg.Register(broadcast.NewChannelSink(1))
	assert.Contains(t, scrape(t, c), "test_live_subscribers 2")
	reg.Unregister(h1)

	assert.Contains(t, scrape(t, c), "test_live_subscribers 1")
}

func TestCollector_RuntimeMetrics(t *testing.T) {
	t.Parallel()

	body := scrape(t, metrics.New("test", metrics.WithRuntimeMetrics()))
	assert.Contains(t, body, "go_goroutines")
}

func scrape(t *testing.T, c *metrics.Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}
