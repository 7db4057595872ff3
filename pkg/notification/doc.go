// Package notification is the in-memory model of a dispatchable order
// notification and the rules that map order lifecycle events onto it.
//
// A Builder turns an event type and order reference into an immutable
// Notification value:
//
//	b := notification.NewBuilder(notification.WithLocale(language.Spanish))
//	n, ok := b.Build(notification.EventOrderReady, "ORD-1")
//	if !ok {
//		// unrecognised event type, nothing to notify
//	}
//
// Kinds follow the lifecycle stage: created and received are info, preparing
// and cancelled are warnings, ready is a success. The message text comes from
// a per-locale catalog interpolated with the order reference; a missing
// reference is replaced with a placeholder instead of failing.
//
// Notification marshals to the payload pushed to live subscribers:
//
//	{"id":"...","type":"success","message":"...","orderId":"ORD-1","timestamp":"..."}
package notification
