// Package redis connects to the Redis server that carries the order event stream.
//
// Connect parses a redis:// URL, pings the server and retries on failure,
// so the service can start before Redis is ready in a compose setup:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Healthcheck adapts the client to the readiness probe of pkg/httpserver.
//
// Failures are reported as sentinel errors (ErrRedisNotReady,
// ErrFailedToParseRedisConnString) joined with the go-redis error.
package redis
