package broadcast

import "errors"

var (
	// ErrSubscriberClosed is returned by a sink that no longer accepts writes.
	ErrSubscriberClosed = errors.New("broadcast: subscriber is closed")

	// ErrSlowSubscriber is returned when a sink's buffer is full.
	ErrSlowSubscriber = errors.New("broadcast: subscriber buffer is full")

	// ErrMarshalPayload is returned when a broadcast value cannot be serialized.
	ErrMarshalPayload = errors.New("broadcast: failed to marshal payload")
)
