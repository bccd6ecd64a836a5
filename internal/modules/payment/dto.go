package payment

import "encoding/json"

const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// WebhookEnvelope is the provider's event wrapper as delivered on the wire.
type WebhookEnvelope struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// IntentPayload is the data object of a payment_intent.* event.
type IntentPayload struct {
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	FailureReason   string `json:"failure_reason,omitempty"`
}
