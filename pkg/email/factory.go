package email

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/orderrelay/pkg/logger"
)

// FactoryOption configures New.
type FactoryOption func(*factoryOptions)

type factoryOptions struct {
	logger   *slog.Logger
	postmark []PostmarkOption
}

// WithLogger sets the logger used to report transport misconfiguration.
func WithLogger(l *slog.Logger) FactoryOption {
	return func(o *factoryOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPostmarkOptions forwards options to NewPostmarkClient.
func WithPostmarkOptions(opts ...PostmarkOption) FactoryOption {
	return func(o *factoryOptions) { o.postmark = append(o.postmark, opts...) }
}

// New builds the sender selected by cfg.Provider. It never fails: when the
// selected transport cannot be created the reason is logged once and an
// Unconfigured sender is returned.
func New(cfg Config, opts ...FactoryOption) Sender {
	o := &factoryOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	var (
		sender Sender
		err    error
	)
	switch cfg.Provider {
	case ProviderPostmark, "":
		sender, err = NewPostmarkClient(cfg, o.postmark...)
	case ProviderSMTP:
		sender, err = NewSMTPClient(cfg)
	case ProviderDev:
		return NewDevSender(cfg.DevDir, cfg.SenderEmail)
	default:
		o.logger.LogAttrs(context.Background(), slog.LevelWarn, "email delivery disabled",
			slog.String("provider", cfg.Provider))
		return Unconfigured{Reason: "mail provider disabled"}
	}

	if err != nil {
		o.logger.LogAttrs(context.Background(), slog.LevelError, "mail transport is not configured, email delivery disabled",
			slog.String("provider", cfg.Provider),
			logger.Error(err),
		)
		return Unconfigured{Reason: err.Error()}
	}
	return sender
}
