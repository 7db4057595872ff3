package queue

import "time"

// Config describes the Redis stream that carries order events.
type Config struct {
	Stream       string        `env:"EVENTS_STREAM" envDefault:"orders:events" validate:"required"`
	Group        string        `env:"EVENTS_GROUP" envDefault:"orderrelay" validate:"required"`
	Consumer     string        `env:"EVENTS_CONSUMER"` // defaults to <hostname>-<random>
	PayloadField string        `env:"EVENTS_PAYLOAD_FIELD" envDefault:"payload"`
	BatchSize    int64         `env:"EVENTS_BATCH_SIZE" envDefault:"10" validate:"min=1"`
	Block        time.Duration `env:"EVENTS_BLOCK" envDefault:"5s"`
	ErrorBackoff time.Duration `env:"EVENTS_ERROR_BACKOFF" envDefault:"1s"`
	MaxLen       int64         `env:"EVENTS_MAX_LEN" envDefault:"10000"`
	// Entries pending on any consumer for longer than ReclaimIdle are taken
	// over every ReclaimInterval. Zero interval disables reclaiming.
	ReclaimIdle     time.Duration `env:"EVENTS_RECLAIM_IDLE" envDefault:"1m"`
	ReclaimInterval time.Duration `env:"EVENTS_RECLAIM_INTERVAL" envDefault:"30s"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Stream:       "orders:events",
		Group:        "orderrelay",
		PayloadField: "payload",
		BatchSize:    10,
		Block:        5 * time.Second,
		ErrorBackoff: time.Second,
		MaxLen:       10000,

		ReclaimIdle:     time.Minute,
		ReclaimInterval: 30 * time.Second,
	}
}
