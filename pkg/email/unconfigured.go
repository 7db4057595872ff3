package email

import (
	"context"
	"fmt"
)

// Unconfigured is the sender used when no transport could be set up.
// IsConfigured is always false and SendEmail always fails.
type Unconfigured struct {
	Reason string
}

func (u Unconfigured) IsConfigured() bool { return false }

func (u Unconfigured) SendEmail(context.Context, Message) error {
	if u.Reason == "" {
		return ErrNotConfigured
	}
	return fmt.Errorf("%w: %s", ErrNotConfigured, u.Reason)
}
