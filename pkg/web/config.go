package web

// Config holds HTTP routing settings.
type Config struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	MaxEventBytes  int64    `env:"MAX_EVENT_BYTES" envDefault:"65536" validate:"min=1"`
	// Honor CF-Connecting-IP, X-Forwarded-For and X-Real-IP. Enable only
	// behind a proxy that sets them.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}
