package queue

import "errors"

// Common errors
var (
	// ErrClientNil is returned when a nil Redis client is provided
	ErrClientNil = errors.New("redis client cannot be nil")

	// ErrHandlerNil is returned when a nil message handler is provided
	ErrHandlerNil = errors.New("message handler cannot be nil")

	// ErrStreamRequired is returned when the stream name is empty
	ErrStreamRequired = errors.New("stream name is required")

	// ErrGroupRequired is returned when the consumer group name is empty
	ErrGroupRequired = errors.New("consumer group name is required")

	// ErrPayloadEmpty is returned when publishing an empty payload
	ErrPayloadEmpty = errors.New("payload cannot be empty")

	// ErrCreateGroup is returned when the consumer group cannot be created
	ErrCreateGroup = errors.New("failed to create consumer group")

	// ErrPublish is returned when appending to the stream fails
	ErrPublish = errors.New("failed to publish message to stream")

	// ErrReclaim is returned when idle entries cannot be claimed
	ErrReclaim = errors.New("failed to reclaim idle stream messages")
)
