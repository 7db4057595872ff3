package main

import (
	"github.com/dmitrymomot/orderrelay/pkg/delivery"
	"github.com/dmitrymomot/orderrelay/pkg/email"
	"github.com/dmitrymomot/orderrelay/pkg/httpserver"
	"github.com/dmitrymomot/orderrelay/pkg/logger"
	"github.com/dmitrymomot/orderrelay/pkg/notification"
	"github.com/dmitrymomot/orderrelay/pkg/queue"
	"github.com/dmitrymomot/orderrelay/pkg/ratelimiter"
	"github.com/dmitrymomot/orderrelay/pkg/redis"
	"github.com/dmitrymomot/orderrelay/pkg/stream"
	"github.com/dmitrymomot/orderrelay/pkg/web"
)

type appConfig struct {
	Env              string `env:"APP_ENV" envDefault:"development"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"orderrelay"`
	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"orderrelay"`
	RuntimeMetrics   bool   `env:"METRICS_RUNTIME" envDefault:"true"`
	// When disabled the service runs without Redis and POST /events feeds
	// the router in-process.
	QueueEnabled bool `env:"QUEUE_ENABLED" envDefault:"true"`
	RateLimit    bool `env:"PUBLISH_RATE_LIMIT" envDefault:"true"`

	LogFile      logger.FileConfig
	HTTP         httpserver.Config
	Web          web.Config
	PublishRate  ratelimiter.Config
	Stream       stream.Config
	Redis        redis.Config
	Queue        queue.Config
	Mail         email.Config
	Delivery     delivery.Config
	Notification notification.Config
}
