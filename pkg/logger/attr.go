package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// EventType records the inbound event type under the key "event_type".
func EventType(eventType string) slog.Attr {
	return slog.String("event_type", eventType)
}

// OrderRef records the external order identifier under the key "order_ref".
func OrderRef(ref string) slog.Attr {
	return slog.String("order_ref", ref)
}

// NotificationID records the notification identifier.
func NotificationID(id string) slog.Attr {
	return slog.String("notification_id", id)
}

// SubscriberID records a live subscriber handle identifier.
func SubscriberID(id string) slog.Attr {
	return slog.String("subscriber_id", id)
}

// Recipient records an email recipient under the key "recipient".
func Recipient(addr string) slog.Attr {
	return slog.String("recipient", addr)
}

// Attempt records the 1-based delivery attempt number.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// MessageID records a queue message identifier.
func MessageID(id string) slog.Attr {
	return slog.String("message_id", id)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Fields records a list of field names, e.g. the ones that failed validation.
func Fields(names ...string) slog.Attr {
	return slog.Any("fields", names)
}

func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
