package router

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/dmitrymomot/orderrelay/pkg/email/templates"
	"github.com/dmitrymomot/orderrelay/pkg/notification"
)

// Item is an order line as published by the order service.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Data is the order payload of an event.
type Data struct {
	OrderNumber   string `json:"orderNumber"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Items         []Item `json:"items,omitempty"`
}

// Event is the inbound queue message.
type Event struct {
	Type notification.EventType `json:"type"`
	Data Data                   `json:"data"`
}

// Decode parses a raw queue message. Unknown fields are ignored; a missing
// type is an error. Unrecognised types decode fine and are filtered later.
func Decode(raw []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return Event{}, errors.Join(ErrInvalidEvent, err)
	}
	ev.Type = notification.EventType(strings.TrimSpace(string(ev.Type)))
	if ev.Type == "" {
		return Event{}, errors.Join(ErrInvalidEvent, ErrMissingType)
	}
	return ev, nil
}

// MissingDeliveryFields returns the names of empty fields an email needs.
func (d Data) MissingDeliveryFields() []string {
	var missing []string
	if strings.TrimSpace(d.OrderNumber) == "" {
		missing = append(missing, "order_number")
	}
	if strings.TrimSpace(d.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if strings.TrimSpace(d.CustomerEmail) == "" {
		missing = append(missing, "customer_email")
	}
	return missing
}

func (e Event) emailOrder() templates.Order {
	items := make([]templates.Item, 0, len(e.Data.Items))
	for _, it := range e.Data.Items {
		items = append(items, templates.Item{Name: it.Name, Quantity: it.Quantity})
	}
	return templates.Order{
		EventType:    string(e.Type),
		Reference:    e.Data.OrderNumber,
		CustomerName: e.Data.CustomerName,
		Items:        items,
	}
}
