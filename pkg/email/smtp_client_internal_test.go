package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func TestTLSPolicy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mail.TLSMandatory, tlsPolicy("ssl_tls"))
	assert.Equal(t, mail.TLSMandatory, tlsPolicy("starttls"))
	assert.Equal(t, mail.NoTLS, tlsPolicy("none"))
}

func TestSMTPClient_BuildMsg(t *testing.T) {
	t.Parallel()

	c := &smtpClient{config: Config{SMTPHost: "localhost", SenderEmail: "orders@example.com", SupportEmail: "help@example.com"}}
	m, err := c.buildMsg(Message{
		To:      "ana@example.com",
		From:    "orders@example.com",
		Subject: "Ready",
		HTML:    "<p>Ready</p>",
		Text:    "Ready",
	})
	require.NoError(t, err)

	rcpts, err := m.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"<ana@example.com>"}, rcpts)

	_, err = c.buildMsg(Message{To: "ana@example.com", From: "not an address", Subject: "s", Text: "t"})
	assert.Error(t, err)
}

func TestSMTPClient_Options(t *testing.T) {
	t.Parallel()

	anon := &smtpClient{config: Config{SMTPPort: 25, SMTPEncryption: "none"}}
	assert.Len(t, anon.clientOptions(), 2)

	auth := &smtpClient{config: Config{SMTPPort: 465, SMTPEncryption: "ssl_tls", SMTPUsername: "u", SMTPPassword: "p"}}
	assert.Len(t, auth.clientOptions(), 6)
}
