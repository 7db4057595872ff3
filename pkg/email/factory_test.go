package email_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/orderrelay/pkg/email"
	"github.com/dmitrymomot/orderrelay/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	log := email.WithLogger(logger.Discard())

	t.Run("postmark with tokens", func(t *testing.T) {
		t.Parallel()
		assert.True(t, email.New(postmarkConfig(), log).IsConfigured())
	})

	t.Run("postmark without tokens is unconfigured", func(t *testing.T) {
		t.Parallel()
		cfg := postmarkConfig()
		cfg.PostmarkServerToken = ""

		sender := email.New(cfg, log)
		assert.False(t, sender.IsConfigured())
		err := sender.SendEmail(context.Background(), email.Message{})
		assert.ErrorIs(t, err, email.ErrNotConfigured)
		assert.Contains(t, err.Error(), "PostmarkServerToken")
	})

	t.Run("smtp requires host", func(t *testing.T) {
		t.Parallel()
		cfg := email.Config{Provider: email.ProviderSMTP, SenderEmail: "orders@example.com"}
		assert.False(t, email.New(cfg, log).IsConfigured())

		cfg.SMTPHost = "smtp.example.com"
		assert.True(t, email.New(cfg, log).IsConfigured())
	})

	t.Run("dev sender", func(t *testing.T) {
		t.Parallel()
		cfg := email.Config{Provider: email.ProviderDev, DevDir: t.TempDir(), SenderEmail: "orders@example.com"}
		assert.True(t, email.New(cfg, log).IsConfigured())
	})

	t.Run("disabled provider", func(t *testing.T) {
		t.Parallel()
		sender := email.New(email.Config{Provider: email.ProviderNone}, log)
		assert.False(t, sender.IsConfigured())
	})
}

func TestUnconfigured(t *testing.T) {
	t.Parallel()

	err := email.Unconfigured{}.SendEmail(context.Background(), email.Message{})
	assert.Equal(t, email.ErrNotConfigured, err)
}
