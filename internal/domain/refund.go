package domain

// RefundOutcome reports what the refund processor did during a cancellation.
// A failed refund never blocks the cancellation; the error travels back to
// the caller in the response payload instead.
type RefundOutcome struct {
	Performed      bool
	CreditRetained bool
	Error          string
}
