package delivery

// Observer receives delivery events. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	// AttemptFailed is called after each failed send.
	AttemptFailed(req Request, attempt int, err error)
	// Completed is called once per request with its terminal outcome.
	Completed(req Request, out Outcome)
}

type nopObserver struct{}

func (nopObserver) AttemptFailed(Request, int, error) {}
func (nopObserver) Completed(Request, Outcome)        {}
