package delivery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/orderrelay/pkg/delivery"
)

func TestRetryPolicy_Delay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 2 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, delivery.DefaultRetryPolicy.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestRetryPolicy_DelayCapped(t *testing.T) {
	t.Parallel()

	p := delivery.RetryPolicy{MaxAttempts: 5, BaseDelay: time.Second, BackoffFactor: 5, MaxDelay: 10 * time.Second}
	assert.Equal(t, time.Second, p.Delay(1))
	assert.Equal(t, 5*time.Second, p.Delay(2))
	assert.Equal(t, 10*time.Second, p.Delay(3))
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg := delivery.Config{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    time.Minute,
		Events:      []string{"order.ready", "order.preparing"},
	}

	p := cfg.Policy()
	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, 2*time.Second, p.Delay(1))
	assert.Equal(t, 4*time.Second, p.Delay(2))

	assert.True(t, cfg.Qualifies("order.ready"))
	assert.True(t, cfg.Qualifies("order.preparing"))
	assert.False(t, cfg.Qualifies("order.created"))
}
