// Package web wires the HTTP routes of the service with chi.
//
// NewRouter mounts the live stream, the publish endpoint, health probes and
// metrics behind request-id, panic recovery, client IP, request logging and
// CORS middleware. Browsers on other origins can open the stream once their
// origin is listed in CORS_ALLOWED_ORIGINS.
//
// POST /events takes the same JSON the order service writes to the queue:
//
//	{"type":"order.ready","data":{"orderNumber":"ORD-1","customerName":"Ana","customerEmail":"ana@example.com"}}
//
// and answers 202 with the stream entry ID. Malformed bodies get 400, unknown
// event types 422. With a PublishLimiter set, callers beyond their budget get
// 429.
package web
