// Package ratelimiter implements a token bucket limiter with an in-memory
// store and HTTP middleware.
//
// The publish endpoint is guarded per client IP so a misbehaving producer
// cannot flood the event stream:
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       30,
//		RefillRate:     10,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(limiter, resolver.KeyFunc, log)).Post("/events", h)
//
// Allowed responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset. Denied ones get 429 with Retry-After.
package ratelimiter
