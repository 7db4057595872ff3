package notification

import "time"

// Kind is the display severity of a notification.
type Kind string

const (
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindSuccess Kind = "success"
)

// EventType is an order lifecycle event type as published on the queue.
type EventType string

const (
	EventOrderCreated   EventType = "order.created"
	EventOrderReceived  EventType = "order.received"
	EventOrderPreparing EventType = "order.preparing"
	EventOrderReady     EventType = "order.ready"
	EventOrderCancelled EventType = "order.cancelled"
)

// Known reports whether t is one of the recognised lifecycle events.
func (t EventType) Known() bool {
	_, ok := rules[t]
	return ok
}

// Kind returns the notification kind for t, or "" for unknown types.
func (t EventType) Kind() Kind {
	return rules[t].kind
}

// Notification is built once per qualifying event and never modified.
// Its JSON form is the live subscriber payload.
type Notification struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"type"`
	Message        string    `json:"message"`
	OrderReference string    `json:"orderId"`
	CreatedAt      time.Time `json:"timestamp"`
}

type rule struct {
	kind Kind
	key  string
}

// rules maps each event type to its kind and message catalog key.
// Catalog keys double as the English format strings.
var rules = map[EventType]rule{
	EventOrderCreated:   {KindInfo, "Order %s has been created"},
	EventOrderReceived:  {KindInfo, "Order %s has been received by the kitchen"},
	EventOrderPreparing: {KindWarning, "Order %s is being prepared"},
	EventOrderReady:     {KindSuccess, "Order %s is ready for pickup"},
	EventOrderCancelled: {KindWarning, "Order %s has been cancelled"},
}
