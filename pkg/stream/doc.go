// Package stream is the live delivery endpoint for order notifications.
//
// Each request to Handler registers a buffered broadcast.ChannelSink with the
// subscriber registry and copies every payload it receives to the client as a
// server-sent event. The handle is unregistered when the client disconnects,
// when a write or keep-alive fails, or when the registry drops the client for
// falling too far behind.
//
//	r.Get("/events", stream.NewHandlerFromConfig(registry, cfg.Stream,
//		stream.WithLogger(log),
//	).ServeHTTP)
//
// Browsers can consume the plain stream with EventSource:
//
//	const es = new EventSource("/events");
//	es.addEventListener("notification", (e) => show(JSON.parse(e.data)));
//
// Datastar pages use data-on-load="@get('/events')" and bind to the
// $notification signal instead.
package stream
