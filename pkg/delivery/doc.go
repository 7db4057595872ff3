// Package delivery sends order emails with bounded retries.
//
// An Engine takes a Request through a small state machine with three terminal
// states:
//
//   - Rejected: the request failed validation or the mail transport is not
//     configured. No send is attempted.
//   - Delivered: a send succeeded. No further attempts are made.
//   - ExhaustedRetries: every attempt allowed by the RetryPolicy failed.
//
// The default policy makes at most three attempts and waits 2s after the first
// failure and 4s after the second. There is no jitter.
//
// Attempt runs the state machine on the calling goroutine and never returns an
// error: failures end up in the Outcome, in the log and in the Observer.
// Dispatch runs Attempt in the background on a context detached from the
// caller's cancellation, so a consumer can acknowledge an event without waiting
// for the mail provider.
//
//	engine := delivery.NewEngine(sender,
//		delivery.WithLogger(log),
//		delivery.WithObserver(collector),
//	)
//	engine.Dispatch(ctx, delivery.Request{
//		RecipientAddress: "ana@example.com",
//		CustomerName:     "Ana",
//		OrderReference:   "ORD-1",
//		Subject:          "Your order ORD-1 is ready for pickup!",
//		Body:             delivery.Body{HTML: html, Text: text},
//	})
//
//	// on shutdown
//	_ = engine.Wait(shutdownCtx)
package delivery
