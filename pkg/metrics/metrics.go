package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/orderrelay/pkg/broadcast"
	"github.com/dmitrymomot/orderrelay/pkg/delivery"
)

// Collector records pipeline metrics on its own Prometheus registry.
// It implements delivery.Observer and router.Observer.
type Collector struct {
	registry *prometheus.Registry

	subscribers     prometheus.Gauge
	events          *prometheus.CounterVec
	broadcastWrites *prometheus.CounterVec
	failedAttempts  *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
	deliveryTime    *prometheus.HistogramVec
}

// Option configures a Collector.
type Option func(*options)

type options struct {
	runtime bool
}

// WithRuntimeMetrics adds the Go runtime and process collectors.
func WithRuntimeMetrics() Option {
	return func(o *options) { o.runtime = true }
}

// New creates a Collector with metric names prefixed by namespace.
func New(namespace string, opts ...Option) *Collector {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_subscribers",
			Help:      "Number of connected live subscribers.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_processed_total",
			Help:      "Order events taken off the queue, by type and status.",
		}, []string{"event_type", "status"}),
		broadcastWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_writes_total",
			Help:      "Live subscriber writes, by result.",
		}, []string{"result"}),
		failedAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_send_failures_total",
			Help:      "Failed email send attempts, by event type.",
		}, []string{"event_type"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_deliveries_total",
			Help:      "Finished email deliveries, by event type and terminal state.",
		}, []string{"event_type", "state"}),
		deliveryTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "email_delivery_duration_seconds",
			Help:      "Time from first attempt to terminal state.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"state"}),
	}

	c.registry.MustRegister(
		c.subscribers,
		c.events,
		c.broadcastWrites,
		c.failedAttempts,
		c.deliveries,
		c.deliveryTime,
	)
	if o.runtime {
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// SetSubscribers records the live subscriber count.
func (c *Collector) SetSubscribers(n int) {
	c.subscribers.Set(float64(n))
}

func (c *Collector) EventProcessed(eventType, status string) {
	c.events.WithLabelValues(eventType, status).Inc()
}

func (c *Collector) Broadcasted(_ string, res broadcast.Result) {
	c.broadcastWrites.WithLabelValues("delivered").Add(float64(res.Delivered))
	c.broadcastWrites.WithLabelValues("pruned").Add(float64(res.Pruned))
}

func (c *Collector) AttemptFailed(req delivery.Request, _ int, _ error) {
	c.failedAttempts.WithLabelValues(req.EventType).Inc()
}

func (c *Collector) Completed(req delivery.Request, out delivery.Outcome) {
	c.deliveries.WithLabelValues(req.EventType, string(out.State)).Inc()
	c.deliveryTime.WithLabelValues(string(out.State)).Observe(out.Elapsed.Seconds())
}
