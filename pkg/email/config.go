package email

import "time"

// Mail providers accepted by Config.Provider.
const (
	ProviderPostmark = "postmark"
	ProviderSMTP     = "smtp"
	ProviderDev      = "dev"
	ProviderNone     = "none"
)

// Config holds mail transport configuration.
// Credentials are optional so that a missing secret degrades email delivery
// instead of preventing the service from starting.
type Config struct {
	Provider string `env:"MAIL_PROVIDER" envDefault:"postmark" validate:"oneof=postmark smtp dev none"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SMTPHost       string        `env:"SMTP_HOST"`
	SMTPPort       int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername   string        `env:"SMTP_USERNAME"`
	SMTPPassword   string        `env:"SMTP_PASSWORD"`
	SMTPEncryption string        `env:"SMTP_ENCRYPTION" envDefault:"starttls" validate:"oneof=none starttls ssl_tls"`
	SMTPTimeout    time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`

	SenderEmail  string `env:"SENDER_EMAIL" envDefault:"orders@localhost.localdomain" validate:"email"`
	SupportEmail string `env:"SUPPORT_EMAIL" validate:"omitempty,email"`

	DevDir string `env:"DEV_MAIL_DIR" envDefault:"./tmp/mail"`
}
