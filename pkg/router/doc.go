// Package router turns raw order events into live notifications and emails.
//
// Router.Handle is called once per queued message, one message at a time. It
//
//  1. decodes the event, dropping malformed input with a warning;
//  2. builds the notification and broadcasts it to live subscribers,
//     waiting for the broadcast pass to finish;
//  3. for email-qualifying event types with a complete customer record,
//     renders the email and hands it to the delivery engine without waiting.
//
// Handle never returns an error and never panics, so the queue consumer can
// acknowledge every message it passes in.
package router
