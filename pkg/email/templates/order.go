package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Item is a single order line shown in the email body.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Order is the data rendered into an order status email.
type Order struct {
	EventType    string
	Reference    string
	CustomerName string
	Items        []Item
}

type copyText struct {
	subject  string
	headline string
	body     string
}

var copies = map[string]copyText{
	"order.ready": {
		subject:  "Your order %s is ready for pickup!",
		headline: "Your order is ready",
		body:     "Good news! Order %s is ready and waiting for you at the counter.",
	},
	"order.preparing": {
		subject:  "Your order %s is being prepared",
		headline: "We're on it",
		body:     "The kitchen has started preparing order %s. We'll let you know when it's ready.",
	},
}

var fallbackCopy = copyText{
	subject:  "Update on your order %s",
	headline: "Order update",
	body:     "There is an update on order %s.",
}

func copyFor(eventType string) copyText {
	if c, ok := copies[eventType]; ok {
		return c
	}
	return fallbackCopy
}

// Subject returns the subject line for the order's event type.
func Subject(o Order) string {
	return fmt.Sprintf(copyFor(o.EventType).subject, o.Reference)
}

// OrderHTML renders the HTML body. All dynamic values are escaped.
func OrderHTML(o Order) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		c := copyFor(o.EventType)

		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html><body style="font-family:sans-serif;color:#222">`)
		b.WriteString(`<h1>`)
		b.WriteString(templ.EscapeString(c.headline))
		b.WriteString(`</h1><p>Hi `)
		b.WriteString(templ.EscapeString(o.CustomerName))
		b.WriteString(`,</p><p>`)
		b.WriteString(templ.EscapeString(fmt.Sprintf(c.body, o.Reference)))
		b.WriteString(`</p>`)

		if len(o.Items) > 0 {
			b.WriteString(`<h2>Your items</h2><ul>`)
			for _, it := range o.Items {
				b.WriteString(`<li>`)
				b.WriteString(templ.EscapeString(fmt.Sprintf("%d × %s", it.Quantity, it.Name)))
				b.WriteString(`</li>`)
			}
			b.WriteString(`</ul>`)
		}

		b.WriteString(`<p>Thank you for your order!</p></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// OrderText renders the plain-text alternative body.
func OrderText(o Order) string {
	c := copyFor(o.EventType)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", o.CustomerName)
	fmt.Fprintf(&b, c.body+"\n", o.Reference)
	if len(o.Items) > 0 {
		b.WriteString("\nYour items:\n")
		for _, it := range o.Items {
			fmt.Fprintf(&b, "  - %d x %s\n", it.Quantity, it.Name)
		}
	}
	b.WriteString("\nThank you for your order!\n")
	return b.String()
}
