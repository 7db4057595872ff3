package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

type smtpClient struct {
	config Config
}

// NewSMTPClient creates a sender that dials the configured SMTP server for
// every message.
func NewSMTPClient(cfg Config) (Sender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTPHost is required", ErrInvalidConfig)
	}
	if !ValidAddress(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	return &smtpClient{config: cfg}, nil
}

func (c *smtpClient) IsConfigured() bool { return true }

// SendEmail builds a multipart message (plain text with an HTML alternative)
// and delivers it in one SMTP session.
func (c *smtpClient) SendEmail(ctx context.Context, msg Message) error {
	msg = msg.withDefaultFrom(c.config.SenderEmail)
	if err := msg.Validate(); err != nil {
		return err
	}

	m, err := c.buildMsg(msg)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	client, err := mail.NewClient(c.config.SMTPHost, c.clientOptions()...)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("create mail client: %w", err))
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}

func (c *smtpClient) buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	if c.config.SupportEmail != "" {
		if err := m.ReplyTo(c.config.SupportEmail); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	m.Subject(msg.Subject)

	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBodyString(mail.TypeTextPlain, msg.Text)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	case msg.HTML != "":
		m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	default:
		m.SetBodyString(mail.TypeTextPlain, msg.Text)
	}
	return m, nil
}

func (c *smtpClient) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(c.config.SMTPPort),
		mail.WithTLSPolicy(tlsPolicy(c.config.SMTPEncryption)),
	}
	if c.config.SMTPEncryption == "ssl_tls" {
		opts = append(opts, mail.WithSSL())
	}
	if c.config.SMTPTimeout > 0 {
		opts = append(opts, mail.WithTimeout(c.config.SMTPTimeout))
	}
	if c.config.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.config.SMTPUsername),
			mail.WithPassword(c.config.SMTPPassword),
		)
	}
	return opts
}

func tlsPolicy(enc string) mail.TLSPolicy {
	switch enc {
	case "ssl_tls", "starttls":
		return mail.TLSMandatory
	default:
		return mail.NoTLS
	}
}
