package email_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/orderrelay/pkg/email"
)

func postmarkConfig() email.Config {
	return email.Config{
		Provider:             email.ProviderPostmark,
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "orders@example.com",
		SupportEmail:         "support@example.com",
	}
}

func TestNewPostmarkClient_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*email.Config)
		wantErr string
	}{
		{"empty server token", func(c *email.Config) { c.PostmarkServerToken = "" }, "PostmarkServerToken is required"},
		{"empty account token", func(c *email.Config) { c.PostmarkAccountToken = "" }, "PostmarkAccountToken is required"},
		{"invalid sender", func(c *email.Config) { c.SenderEmail = "orders" }, "SenderEmail must be a valid email address"},
		{"invalid support", func(c *email.Config) { c.SupportEmail = "@example.com" }, "SupportEmail must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := postmarkConfig()
			tt.mutate(&cfg)

			client, err := email.NewPostmarkClient(cfg)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

type postmarkStub struct {
	mu       sync.Mutex
	requests []map[string]any
	status   int
	body     string
}

func (s *postmarkStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	_ = json.NewDecoder(r.Body).Decode(&payload)

	s.mu.Lock()
	s.requests = append(s.requests, payload)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	_, _ = w.Write([]byte(s.body))
}

func TestPostmarkClient_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("sends html and text with default sender", func(t *testing.T) {
		t.Parallel()
		stub := &postmarkStub{status: http.StatusOK, body: `{"ErrorCode":0,"Message":"OK","MessageID":"abc"}`}
		srv := httptest.NewServer(stub)
		defer srv.Close()

		client, err := email.NewPostmarkClient(postmarkConfig(), email.WithPostmarkBaseURL(srv.URL))
		require.NoError(t, err)
		assert.True(t, client.IsConfigured())

		err = client.SendEmail(context.Background(), email.Message{
			To:      "ana@example.com",
			Subject: "Your order ORD-1 is ready",
			HTML:    "<p>Ready</p>",
			Text:    "Ready",
		})
		require.NoError(t, err)

		require.Len(t, stub.requests, 1)
		req := stub.requests[0]
		assert.Equal(t, "orders@example.com", req["From"])
		assert.Equal(t, "ana@example.com", req["To"])
		assert.Equal(t, "support@example.com", req["ReplyTo"])
		assert.Equal(t, "<p>Ready</p>", req["HtmlBody"])
		assert.Equal(t, "Ready", req["TextBody"])
	})

	t.Run("api error code is a send failure", func(t *testing.T) {
		t.Parallel()
		stub := &postmarkStub{status: http.StatusUnprocessableEntity, body: `{"ErrorCode":300,"Message":"Invalid email request"}`}
		srv := httptest.NewServer(stub)
		defer srv.Close()

		client, err := email.NewPostmarkClient(postmarkConfig(), email.WithPostmarkBaseURL(srv.URL))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), email.Message{To: "ana@example.com", Subject: "s", Text: "t"})
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	})

	t.Run("invalid message is rejected before the api call", func(t *testing.T) {
		t.Parallel()
		stub := &postmarkStub{status: http.StatusOK, body: `{}`}
		srv := httptest.NewServer(stub)
		defer srv.Close()

		client, err := email.NewPostmarkClient(postmarkConfig(), email.WithPostmarkBaseURL(srv.URL))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), email.Message{To: "not-an-email", Subject: "s", Text: "t"})
		assert.ErrorIs(t, err, email.ErrInvalidMessage)
		assert.Empty(t, stub.requests)
	})
}
