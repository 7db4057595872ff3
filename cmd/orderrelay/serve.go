package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/orderrelay/pkg/broadcast"
	"github.com/dmitrymomot/orderrelay/pkg/delivery"
	"github.com/dmitrymomot/orderrelay/pkg/email"
	"github.com/dmitrymomot/orderrelay/pkg/httpserver"
	"github.com/dmitrymomot/orderrelay/pkg/logger"
	"github.com/dmitrymomot/orderrelay/pkg/metrics"
	"github.com/dmitrymomot/orderrelay/pkg/notification"
	"github.com/dmitrymomot/orderrelay/pkg/queue"
	"github.com/dmitrymomot/orderrelay/pkg/ratelimiter"
	"github.com/dmitrymomot/orderrelay/pkg/redis"
	"github.com/dmitrymomot/orderrelay/pkg/router"
	"github.com/dmitrymomot/orderrelay/pkg/scheduler"
	"github.com/dmitrymomot/orderrelay/pkg/stream"
	"github.com/dmitrymomot/orderrelay/pkg/web"
)

const readinessTimeout = 2 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Consume order events and serve the live stream",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if err := serve(ctx, cfg, log); err != nil {
		log.Error("orderrelay stopped with error", logger.Error(err))
		return err
	}
	return nil
}

func serve(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	var metricOpts []metrics.Option
	if cfg.RuntimeMetrics {
		metricOpts = append(metricOpts, metrics.WithRuntimeMetrics())
	}
	m := metrics.New(cfg.MetricsNamespace, metricOpts...)

	registry := broadcast.NewRegistry(
		broadcast.WithLogger(log.With(logger.Component("broadcast"))),
		broadcast.WithSizeCallback(m.SetSubscribers),
	)

	sender := email.New(cfg.Mail, email.WithLogger(log.With(logger.Component("email"))))
	engine := delivery.NewEngine(sender,
		delivery.WithLogger(log),
		delivery.WithRetryPolicy(cfg.Delivery.Policy()),
		delivery.WithObserver(m),
	)

	rt := router.New(
		notification.NewBuilderFromConfig(cfg.Notification),
		registry,
		engine,
		router.WithLogger(log),
		router.WithEmailEvents(cfg.Delivery.Events...),
		router.WithObserver(m),
	)

	jobs, err := scheduler.New(scheduler.WithLogger(log))
	if err != nil {
		return err
	}

	var limiter *ratelimiter.Bucket
	if cfg.RateLimit {
		store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
		defer store.Close()

		if limiter, err = ratelimiter.NewBucket(store, cfg.PublishRate); err != nil {
			return err
		}
		if err := jobs.Add(scheduler.Job{
			Name:  "sweep-rate-limits",
			Every: 5 * time.Minute,
			Run: func(context.Context) error {
				store.RemoveStale()
				return nil
			},
		}); err != nil {
			return err
		}
	}

	readiness := []httpserver.Check{
		{Name: "mail", Probe: httpserver.ConfiguredCheck(engine.IsConfigured, httpserver.ErrMailNotConfigured)},
	}

	var (
		publisher web.Publisher
		consumer  *queue.Consumer
	)
	if cfg.QueueEnabled {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		readiness = append(readiness, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})

		consumer, err = queue.NewConsumer(client, rt, cfg.Queue, queue.WithConsumerLogger(log))
		if err != nil {
			return err
		}
		if publisher, err = queue.NewPublisher(client, cfg.Queue, queue.WithPublisherLogger(log.With(logger.Component("publisher")))); err != nil {
			return err
		}

		if cfg.Queue.ReclaimInterval > 0 {
			if err := jobs.Add(scheduler.Job{
				Name:  "reclaim-stream",
				Every: cfg.Queue.ReclaimInterval,
				Run: func(ctx context.Context) error {
					_, err := consumer.Reclaim(ctx)
					return err
				},
			}); err != nil {
				return err
			}
		}
	} else {
		log.Warn("event queue disabled, published events are routed in-process")
		publisher = newDirectPublisher(rt, uuid.NewString)
	}

	handler := web.NewRouter(cfg.Web, web.Routes{
		Stream:    stream.NewHandlerFromConfig(registry, cfg.Stream, stream.WithLogger(log)),
		Publisher: publisher,
		Live:      httpserver.LivenessHandler(),
		Ready:     httpserver.ReadinessHandler(log, readinessTimeout, readiness...),
		Metrics:   m.Handler(),

		PublishLimiter: limiter,
	}, log.With(logger.Component("http")))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log.With(logger.Component("httpserver"))))

	g, gctx := errgroup.WithContext(ctx)
	if consumer != nil {
		g.Go(func() error { return consumer.Run(gctx) })
	}
	g.Go(func() error { return jobs.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx, handler) })

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	// Emails already handed to the engine keep retrying after shutdown starts.
	waitCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if werr := engine.Wait(waitCtx); werr != nil {
		log.Warn("abandoning in-flight email deliveries", slog.Int("in_flight", engine.InFlight()), logger.Error(werr))
	}

	log.Info("orderrelay stopped")
	return err
}
