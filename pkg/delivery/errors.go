package delivery

import "errors"

var (
	ErrInvalidRequest     = errors.New("delivery: invalid request")
	ErrTransportDisabled  = errors.New("delivery: mail transport is not configured")
	ErrSendPanicked       = errors.New("delivery: send panicked")
	ErrDeliveryInProgress = errors.New("delivery: deliveries still in flight")
)
