package payment

import "errors"

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrUnknownEventType = errors.New("unknown event type")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrUpstream         = errors.New("payment provider error")
)
