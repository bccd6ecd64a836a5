package payment

import (
	"context"
	"time"

	"bookwise/internal/domain"
	"bookwise/internal/modules/notification"
	"bookwise/internal/provider"
)

type paymentRepo interface {
	GetByExternalID(ctx context.Context, externalID string) (*domain.Payment, error)
	MarkSucceededIdempotent(ctx context.Context, externalID string, paidAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, externalID string, reason string) (bool, error)
	MarkRefundedIdempotent(ctx context.Context, id int64, at time.Time) (bool, error)
}

type webhookLedger interface {
	EnsureRecorded(ctx context.Context, eventID, eventType string) (*domain.WebhookEvent, error)
	MarkProcessed(ctx context.Context, eventID string, at time.Time) (bool, error)
}

type bookingPaymentWriter interface {
	MarkPaid(ctx context.Context, id int64) error
	MarkPaymentFailed(ctx context.Context, id int64) error
}

type providerClient interface {
	RetrieveIntent(ctx context.Context, intentID string) (*provider.Intent, error)
	ListCharges(ctx context.Context, intentID string) ([]provider.Charge, error)
	CreateRefund(ctx context.Context, chargeID string, amount int64) (*provider.Refund, error)
}

type notifier interface {
	PaymentReceived(ctx context.Context, ev notification.PaymentReceivedEvent)
}

type cacheInvalidator interface {
	InvalidateBookingPayments(ctx context.Context, bookingID int64)
}
