package payment

import (
	"context"
	"fmt"
	"time"

	"bookwise/internal/domain"
	"bookwise/internal/provider"
)

// RefundProcessor decides refund eligibility during a cancellation and
// performs amount-capped, idempotent refunds through the provider.
type RefundProcessor struct {
	payments paymentRepo
	provider providerClient
	now      func() time.Time
	loggerf  func(format string, args ...interface{})
}

func NewRefundProcessor(payments paymentRepo, provider providerClient, loggerf func(format string, args ...interface{})) *RefundProcessor {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &RefundProcessor{
		payments: payments,
		provider: provider,
		now:      time.Now,
		loggerf:  loggerf,
	}
}

// MaybeRefund runs the eligibility rules and, when they pass, refunds
// min(provider charge amount, local payment amount). Every failure,
// including a provider timeout, lands in the outcome's Error field; the
// surrounding cancellation succeeds regardless.
func (rp *RefundProcessor) MaybeRefund(ctx context.Context, b *domain.Booking, p *domain.Payment, role domain.Role, refundRequested bool) domain.RefundOutcome {
	if p == nil {
		return domain.RefundOutcome{}
	}

	// offline/cash payments are never auto-refunded: the payment stays
	// available as credit toward a later booking
	if p.Method != domain.PaymentMethodCard {
		return domain.RefundOutcome{CreditRetained: true}
	}

	if role.IsStaff() && !refundRequested {
		return domain.RefundOutcome{CreditRetained: true}
	}

	if p.Status == domain.PaymentRefunded {
		rp.loggerf("level=info msg=refund skipped, already refunded payment_id=%d", p.ID)
		return domain.RefundOutcome{}
	}

	charge, err := rp.findCharge(ctx, p.ExternalPaymentID)
	if err != nil {
		return domain.RefundOutcome{Error: err.Error()}
	}

	if charge.Refunded {
		// provider already refunded; catch the local ledger up
		if _, err := rp.payments.MarkRefundedIdempotent(ctx, p.ID, rp.now()); err != nil {
			rp.loggerf("level=error msg=local refund catch-up failed payment_id=%d err=%v", p.ID, err)
		}
		return domain.RefundOutcome{}
	}

	amount := charge.Amount
	if p.Amount < amount {
		amount = p.Amount
	}

	if _, err := rp.provider.CreateRefund(ctx, charge.ID, amount); err != nil {
		return domain.RefundOutcome{Error: fmt.Sprintf("refund failed: %v", err)}
	}

	changed, err := rp.payments.MarkRefundedIdempotent(ctx, p.ID, rp.now())
	if err != nil {
		rp.loggerf("level=error msg=refund local status update failed payment_id=%d err=%v", p.ID, err)
		return domain.RefundOutcome{Performed: true, Error: err.Error()}
	}
	if !changed {
		rp.loggerf("level=info msg=refund raced, local status already refunded payment_id=%d", p.ID)
	}

	return domain.RefundOutcome{Performed: true}
}

func (rp *RefundProcessor) findCharge(ctx context.Context, externalPaymentID string) (*provider.Charge, error) {
	charges, err := rp.provider.ListCharges(ctx, externalPaymentID)
	if err != nil {
		return nil, fmt.Errorf("list charges: %v", err)
	}
	for i := range charges {
		if charges[i].Status == "succeeded" || charges[i].Status == "paid" {
			return &charges[i], nil
		}
	}
	return nil, fmt.Errorf("no settled charge found for payment %s", externalPaymentID)
}
