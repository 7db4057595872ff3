// Package requestid correlates an HTTP request with everything it causes.
//
// Middleware assigns each request an ID, reusing a valid X-Request-ID from
// the caller. The queue publisher copies the ID into the stream entry and the
// consumer restores it into the handler context, so the router and the
// delivery engine log the same request_id as the POST that produced the
// event:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
//
// IDs longer than 128 characters or containing anything besides letters,
// digits, '-', '_', '.' and ':' are replaced.
package requestid
