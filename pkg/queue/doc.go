// Package queue moves order events over a Redis stream.
//
// Consumer reads the stream through a consumer group (XREADGROUP) and calls
// the Handler for each entry, strictly one at a time so events are handled in
// stream order. Every entry is acknowledged (XACK) once the handler returns,
// including entries that the handler could not decode: a bad message is
// dropped, never redelivered forever. On start the consumer first replays its
// own pending entries, which covers a crash between handling and ack.
//
//	consumer, err := queue.NewConsumer(client, router, cfg.Queue,
//		queue.WithConsumerLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	g.Go(func() error { return consumer.Run(ctx) })
//
// Publisher appends raw event payloads (XADD) to the same stream. Each entry
// stores the JSON event under a single field, "payload" by default.
package queue
