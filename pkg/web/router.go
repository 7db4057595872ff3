package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/orderrelay/pkg/clientip"
	"github.com/dmitrymomot/orderrelay/pkg/logger"
	"github.com/dmitrymomot/orderrelay/pkg/ratelimiter"
	"github.com/dmitrymomot/orderrelay/pkg/requestid"
)

// Routes are the handlers mounted by NewRouter. Nil handlers are skipped.
type Routes struct {
	Stream    http.Handler
	Publisher Publisher
	Live      http.Handler
	Ready     http.Handler
	Metrics   http.Handler
	// PublishLimiter throttles POST /events per client IP when set.
	PublishLimiter *ratelimiter.Bucket
}

// NewRouter builds the service's HTTP routes:
//
//	GET  /events   live notification stream
//	POST /events   publish a raw order event
//	GET  /health   liveness
//	GET  /ready    readiness
//	GET  /metrics  Prometheus metrics
func NewRouter(cfg Config, routes Routes, log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.Discard()
	}

	resolver := clientip.Resolver{}
	if cfg.TrustProxyHeaders {
		resolver = clientip.NewResolver(clientip.DefaultHeaders...)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(resolver.Middleware)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Datastar-Request", "Last-Event-ID", requestid.Header},
		ExposedHeaders: []string{requestid.Header},
		MaxAge:         300,
	}))

	if routes.Live != nil {
		r.Method(http.MethodGet, "/health", routes.Live)
	}
	if routes.Ready != nil {
		r.Method(http.MethodGet, "/ready", routes.Ready)
	}
	if routes.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", routes.Metrics)
	}
	if routes.Stream != nil {
		r.Method(http.MethodGet, "/events", routes.Stream)
	}
	if routes.Publisher != nil {
		publish := r.With()
		if routes.PublishLimiter != nil {
			publish = r.With(ratelimiter.Middleware(routes.PublishLimiter, resolver.KeyFunc, log))
		}
		publish.Post("/events", PublishHandler(routes.Publisher, cfg.MaxEventBytes, log))
	}

	return r
}

// requestLogger logs each request once it completes. Streams are logged when
// the client disconnects.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if r.URL.Path == "/health" || r.URL.Path == "/ready" || r.URL.Path == "/metrics" {
				level = slog.LevelDebug
			}
			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
				slog.String("client_ip", clientip.FromContext(r.Context())),
			)
		})
	}
}
