// Package metrics exposes Prometheus metrics for the notification pipeline.
//
// A Collector is passed as the observer of the router and the delivery engine
// and as the size callback of the subscriber registry:
//
//	m := metrics.New("orderrelay", metrics.WithRuntimeMetrics())
//	reg := broadcast.NewRegistry(broadcast.WithSizeCallback(m.SetSubscribers))
//	engine := delivery.NewEngine(sender, delivery.WithObserver(m))
//	r := router.New(builder, reg, engine, router.WithObserver(m))
//	mux.Handle("/metrics", m.Handler())
package metrics
