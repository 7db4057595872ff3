package delivery

import "time"

// State is a terminal state of a delivery.
type State string

const (
	StateDelivered        State = "delivered"
	StateExhaustedRetries State = "exhausted_retries"
	StateRejected         State = "rejected"
)

// Body holds the rendered message bodies.
type Body struct {
	HTML string
	Text string
}

// Request describes one email to deliver. It is not persisted: a restart
// drops pending retries.
type Request struct {
	RecipientAddress string
	CustomerName     string
	OrderReference   string
	EventType        string
	Subject          string
	Body             Body
}

// Validate checks the fields required before any send is attempted.
// The returned error is a ValidationErrors listing every failing field.
func (r Request) Validate() error {
	return apply(
		required("recipient_address", r.RecipientAddress),
		address("recipient_address", r.RecipientAddress),
		required("customer_name", r.CustomerName),
		required("order_reference", r.OrderReference),
	)
}

// Outcome is the result of one delivery lifecycle.
type Outcome struct {
	State        State
	AttemptsUsed int
	LastError    error
	Elapsed      time.Duration
}

// Succeeded reports whether the email was delivered.
func (o Outcome) Succeeded() bool {
	return o.State == StateDelivered
}

// LastErrorDescription returns the last error text, or "" when there was none.
func (o Outcome) LastErrorDescription() string {
	if o.LastError == nil {
		return ""
	}
	return o.LastError.Error()
}
