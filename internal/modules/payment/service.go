package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookwise/internal/modules/notification"

	"gorm.io/gorm"
)

// Reconciler applies payment provider events to Payment and Booking rows
// exactly once. The webhook ledger row is flipped to processed only after
// the effects are durably applied; the effects themselves are idempotent, so
// a crash between effect and ledger write is safe to retry.
type Reconciler struct {
	payments paymentRepo
	ledger   webhookLedger
	bookings bookingPaymentWriter
	notifs   notifier
	cache    cacheInvalidator
	now      func() time.Time
	loggerf  func(format string, args ...interface{})
}

func NewReconciler(
	payments paymentRepo,
	ledger webhookLedger,
	bookings bookingPaymentWriter,
	notifs notifier,
	cache cacheInvalidator,
	loggerf func(format string, args ...interface{}),
) *Reconciler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Reconciler{
		payments: payments,
		ledger:   ledger,
		bookings: bookings,
		notifs:   notifs,
		cache:    cache,
		now:      time.Now,
		loggerf:  loggerf,
	}
}

// HandleEvent processes one authenticated provider event. Replays and
// concurrent duplicate deliveries return success without reapplying effects.
func (r *Reconciler) HandleEvent(ctx context.Context, eventID, eventType string, payload []byte) error {
	rec, err := r.ledger.EnsureRecorded(ctx, eventID, eventType)
	if err != nil {
		return err
	}
	if rec.Processed {
		r.loggerf("level=info msg=webhook event already processed event_id=%s", eventID)
		return nil
	}

	var data IntentPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("decode event payload: %w", err)
	}

	switch eventType {
	case EventPaymentSucceeded:
		if err := r.applySuccess(ctx, data); err != nil {
			return err
		}
	case EventPaymentFailed:
		if err := r.applyFailure(ctx, data); err != nil {
			return err
		}
	default:
		r.loggerf("level=info msg=ignoring webhook event type event_id=%s type=%s", eventID, eventType)
	}

	if _, err := r.ledger.MarkProcessed(ctx, eventID, r.now()); err != nil {
		return err
	}
	return nil
}

func (r *Reconciler) applySuccess(ctx context.Context, data IntentPayload) error {
	p, err := r.payments.GetByExternalID(ctx, data.PaymentIntentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: %s", ErrPaymentNotFound, data.PaymentIntentID)
		}
		return err
	}

	changed, err := r.payments.MarkSucceededIdempotent(ctx, data.PaymentIntentID, r.now())
	if err != nil {
		return err
	}
	if !changed {
		// already succeeded via a direct confirmation path or an earlier
		// delivery; nothing more to apply
		r.loggerf("level=info msg=payment already succeeded external_id=%s", data.PaymentIntentID)
		return nil
	}

	if p.BookingID != nil {
		if err := r.bookings.MarkPaid(ctx, *p.BookingID); err != nil {
			return err
		}
		if r.notifs != nil {
			r.notifs.PaymentReceived(ctx, notification.PaymentReceivedEvent{
				BookingID:         *p.BookingID,
				ExternalPaymentID: p.ExternalPaymentID,
				Amount:            p.Amount,
			})
		}
		if r.cache != nil {
			r.cache.InvalidateBookingPayments(ctx, *p.BookingID)
		}
	}
	return nil
}

func (r *Reconciler) applyFailure(ctx context.Context, data IntentPayload) error {
	p, err := r.payments.GetByExternalID(ctx, data.PaymentIntentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: %s", ErrPaymentNotFound, data.PaymentIntentID)
		}
		return err
	}

	changed, err := r.payments.MarkFailed(ctx, data.PaymentIntentID, data.FailureReason)
	if err != nil {
		return err
	}
	if !changed {
		// the payment already settled; a late failure event must not
		// regress it or the booking's payment state
		r.loggerf("level=info msg=stale failure event ignored external_id=%s", data.PaymentIntentID)
		return nil
	}

	// a failed payment does not cancel the booking, only its payment state
	if p.BookingID != nil {
		if err := r.bookings.MarkPaymentFailed(ctx, *p.BookingID); err != nil {
			return err
		}
		if r.cache != nil {
			r.cache.InvalidateBookingPayments(ctx, *p.BookingID)
		}
	}
	return nil
}
