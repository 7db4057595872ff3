// Package broadcast keeps the set of connected live subscribers and fans
// payloads out to them.
//
// A Registry owns every subscriber Handle. Transports register a Sink when a
// client connects and unregister it when the client goes away:
//
//	reg := broadcast.NewRegistry()
//	sink := broadcast.NewChannelSink(16)
//	h := reg.Register(sink)
//	defer reg.Unregister(h)
//
//	for payload := range sink.Messages() {
//		// write payload to the client connection
//	}
//
// Broadcast serializes a value once and writes it to a snapshot of the
// registered sinks. A sink whose write fails is unregistered during the same
// call and the remaining sinks still receive the payload. Dead connections are
// therefore pruned on their first failed write; nothing probes them.
package broadcast
