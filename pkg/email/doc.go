// Package email sends transactional order emails through a pluggable Sender.
//
// Implementations:
//   - Postmark (production, mrz1836/postmark)
//   - SMTP (wneessen/go-mail, HTML body with a plain-text alternative)
//   - DevSender (writes .html, .txt and .json files to a directory)
//   - Unconfigured (reports IsConfigured() == false, every send fails)
//
// New picks the implementation from Config. Missing credentials do not stop
// startup: the problem is logged once and an unconfigured sender is returned,
// so callers can skip delivery without spending retries on it.
//
//	sender := email.New(cfg, email.WithLogger(log))
//	if sender.IsConfigured() {
//		err := sender.SendEmail(ctx, email.Message{
//			To:      "ana@example.com",
//			Subject: "Your order ORD-1 is ready",
//			HTML:    html,
//			Text:    text,
//		})
//	}
//
// A Message with an empty From is sent from Config.SenderEmail.
package email
