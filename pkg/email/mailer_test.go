package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/orderrelay/pkg/email"
)

func TestValidAddress(t *testing.T) {
	t.Parallel()

	valid := []string{"ana@example.com", "a.b+tag@sub.example.co", "x@y.z"}
	invalid := []string{"", "not-an-email", "ana@example", "@example.com", "ana@@example.com", "ana @example.com", "ana@example.com "}

	for _, s := range valid {
		assert.True(t, email.ValidAddress(s), s)
	}
	for _, s := range invalid {
		assert.False(t, email.ValidAddress(s), s)
	}
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msg     email.Message
		wantErr string
	}{
		{
			name: "html and text",
			msg:  email.Message{To: "ana@example.com", Subject: "Ready", HTML: "<p>hi</p>", Text: "hi"},
		},
		{
			name: "text only",
			msg:  email.Message{To: "ana@example.com", Subject: "Ready", Text: "hi"},
		},
		{
			name:    "missing recipient",
			msg:     email.Message{To: "  ", Subject: "Ready", Text: "hi"},
			wantErr: "To is required",
		},
		{
			name:    "invalid recipient",
			msg:     email.Message{To: "not-an-email", Subject: "Ready", Text: "hi"},
			wantErr: "To must be a valid email address",
		},
		{
			name:    "missing subject",
			msg:     email.Message{To: "ana@example.com", Text: "hi"},
			wantErr: "Subject is required",
		},
		{
			name:    "missing body",
			msg:     email.Message{To: "ana@example.com", Subject: "Ready"},
			wantErr: "HTML or Text body is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.msg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidMessage)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
