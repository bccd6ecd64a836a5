package repository

import (
	"context"
	"time"

	"bookwise/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("external_payment_id = ?", externalID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkSucceededIdempotent moves a pending payment to succeeded. Status
// transitions are monotonic: an already-succeeded payment is untouched by
// replays, and a refunded payment never regresses when the provider delivers
// an old success event late. The rows-affected gate tells the caller whether
// booking effects still need to be applied.
func (r *PaymentRepository) MarkSucceededIdempotent(ctx context.Context, externalID string, paidAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("external_payment_id = ? AND status = ?", externalID, domain.PaymentPending).
		Updates(map[string]interface{}{
			"status":  domain.PaymentSucceeded,
			"paid_at": paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkFailed moves a pending payment to failed. A failure event arriving
// after the payment already succeeded or was refunded is stale provider
// ordering and leaves the row untouched; false tells the caller to skip the
// booking-side effect.
func (r *PaymentRepository) MarkFailed(ctx context.Context, externalID string, reason string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("external_payment_id = ? AND status = ?", externalID, domain.PaymentPending).
		Updates(map[string]interface{}{
			"status":         domain.PaymentFailed,
			"failure_reason": reason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkRefundedIdempotent flips the payment to refunded only once. The
// rows-affected gate makes a duplicate refund attempt a no-op.
func (r *PaymentRepository) MarkRefundedIdempotent(ctx context.Context, id int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ? AND status <> ?", id, domain.PaymentRefunded).
		Updates(map[string]interface{}{
			"status":      domain.PaymentRefunded,
			"refunded_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("id DESC").First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
