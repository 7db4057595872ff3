package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Sender delivers one message per SendEmail call.
// Implementations must be safe for concurrent use.
type Sender interface {
	// SendEmail makes a single delivery attempt. It does not retry.
	SendEmail(ctx context.Context, msg Message) error

	// IsConfigured reports whether the transport has what it needs to send.
	IsConfigured() bool
}

// Message is the outbound payload handed to a transport.
type Message struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
	Tag     string `json:"tag,omitempty"`
}

var addressRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidAddress reports whether s has the shape local@domain.tld.
func ValidAddress(s string) bool {
	return addressRegex.MatchString(s)
}

// Validate checks that the message can be handed to a transport.
func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.To) == "":
		return fmt.Errorf("%w: To is required", ErrInvalidMessage)
	case !ValidAddress(m.To):
		return fmt.Errorf("%w: To must be a valid email address", ErrInvalidMessage)
	case strings.TrimSpace(m.Subject) == "":
		return fmt.Errorf("%w: Subject is required", ErrInvalidMessage)
	case strings.TrimSpace(m.HTML) == "" && strings.TrimSpace(m.Text) == "":
		return fmt.Errorf("%w: HTML or Text body is required", ErrInvalidMessage)
	}
	return nil
}

func (m Message) withDefaultFrom(from string) Message {
	if m.From == "" {
		m.From = from
	}
	return m
}
