// Package httpserver runs the service's HTTP surface with graceful shutdown
// and health endpoints.
//
// Server listens on the configured address and serves until the context
// passed to Run is canceled or Shutdown is called. Shutdown first cancels
// the base context of every request, which ends open event streams, and then
// waits up to the shutdown timeout for in-flight requests.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	g.Go(func() error { return srv.Run(ctx, router) })
//
// LivenessHandler always reports ALIVE. ReadinessHandler runs named checks and
// reports READY or NOT_READY together with the result of each check:
//
//	r.Get("/ready", httpserver.ReadinessHandler(log, 2*time.Second,
//		httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)},
//		httpserver.Check{Name: "mail", Probe: httpserver.ConfiguredCheck(sender.IsConfigured, httpserver.ErrMailNotConfigured)},
//	))
//
// Signal handling is left to the caller (signal.NotifyContext in main).
package httpserver
