package delivery

import (
	"slices"
	"time"
)

// RetryPolicy defines the attempt ceiling and exponential backoff.
type RetryPolicy struct {
	MaxAttempts   int
	BaseDelay     time.Duration
	BackoffFactor float64
	// MaxDelay caps a single wait. Zero means no cap.
	MaxDelay time.Duration
}

// DefaultRetryPolicy makes three attempts, waiting 2s and then 4s.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:   3,
	BaseDelay:     2 * time.Second,
	BackoffFactor: 2,
}

// Delay returns the wait after failed attempt n (1-based):
// BaseDelay * BackoffFactor^(n-1), capped at MaxDelay.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	factor := p.BackoffFactor
	if factor <= 0 {
		factor = 1
	}

	delay := float64(p.BaseDelay)
	for i := 1; i < attempt; i++ {
		delay *= factor
	}

	d := time.Duration(delay)
	if d < 0 || (p.MaxDelay > 0 && d > p.MaxDelay) {
		d = p.MaxDelay
	}
	return d
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	return p
}

// Config holds delivery settings.
type Config struct {
	MaxAttempts int           `env:"DELIVERY_MAX_ATTEMPTS" envDefault:"3" validate:"min=1,max=10"`
	BaseDelay   time.Duration `env:"DELIVERY_BASE_DELAY" envDefault:"2s"`
	MaxDelay    time.Duration `env:"DELIVERY_MAX_DELAY" envDefault:"1m"`
	// Events lists the event types that trigger an email.
	Events []string `env:"DELIVERY_EVENTS" envDefault:"order.ready,order.preparing" envSeparator:","`
}

// Policy returns the retry policy described by c.
func (c Config) Policy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   c.MaxAttempts,
		BaseDelay:     c.BaseDelay,
		BackoffFactor: 2,
		MaxDelay:      c.MaxDelay,
	}
}

// Qualifies reports whether eventType triggers an email.
func (c Config) Qualifies(eventType string) bool {
	return slices.Contains(c.Events, eventType)
}
