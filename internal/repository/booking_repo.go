package repository

import (
	"context"
	"errors"
	"time"

	"bookwise/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	BusinessID      int64      `gorm:"column:business_id"`
	ClientID        int64      `gorm:"column:client_id"`
	ResourceKind    string     `gorm:"column:resource_kind"`
	ResourceID      *int64     `gorm:"column:resource_id"`
	ServiceID       *int64     `gorm:"column:service_id"`
	CourtID         *int64     `gorm:"column:court_id"`
	StartTime       time.Time  `gorm:"column:start_time"`
	DurationMinutes int        `gorm:"column:duration_minutes"`
	Status          string     `gorm:"column:status"`
	Paid            bool       `gorm:"column:paid"`
	PaymentMethod   string     `gorm:"column:payment_method"`
	PaymentStatus   string     `gorm:"column:payment_status"`
	PaymentReused   bool       `gorm:"column:payment_reused"`
	ReminderSentAt  *time.Time `gorm:"column:reminder_sent_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:              m.ID,
		BusinessID:      m.BusinessID,
		ClientID:        m.ClientID,
		ResourceKind:    domain.ResourceKind(m.ResourceKind),
		ResourceID:      m.ResourceID,
		ServiceID:       m.ServiceID,
		CourtID:         m.CourtID,
		StartTime:       m.StartTime,
		DurationMinutes: m.DurationMinutes,
		Status:          domain.BookingStatus(m.Status),
		Paid:            m.Paid,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		PaymentStatus:   domain.BookingPaymentStatus(m.PaymentStatus),
		PaymentReused:   m.PaymentReused,
		ReminderSentAt:  m.ReminderSentAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		CancelledAt:     m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		BusinessID:      b.BusinessID,
		ClientID:        b.ClientID,
		ResourceKind:    string(b.ResourceKind),
		ResourceID:      b.ResourceID,
		ServiceID:       b.ServiceID,
		CourtID:         b.CourtID,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Paid:            b.Paid,
		PaymentMethod:   string(b.PaymentMethod),
		PaymentStatus:   string(b.PaymentStatus),
		PaymentReused:   b.PaymentReused,
		ReminderSentAt:  b.ReminderSentAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

// ErrPaymentNotReusable means the reuse_payment_id does not reference a
// credit the booking's client may spend: the payment must belong to one of
// the client's own cancelled bookings, must not be refunded, and must not
// have been reused already.
var ErrPaymentNotReusable = errors.New("payment is not reusable")

// Create inserts the booking and, when reusePaymentID is set, flips the
// reused flag on the superseded payment in the same transaction. When
// withConsent is set, the dependent consent record is created alongside.
// The insert may trip the idx_no_double_booking exclusion constraint; the
// caller maps that to a conflict error.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking, reusePaymentID *int64, withConsent bool) error {
	m := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if withConsent {
			consent := domain.ConsentRecord{BookingID: m.ID, ClientID: m.ClientID}
			if err := tx.Create(&consent).Error; err != nil {
				return err
			}
		}
		if reusePaymentID != nil {
			res := tx.Model(&domain.Payment{}).
				Where("id = ? AND reused = ? AND status <> ?", *reusePaymentID, false, domain.PaymentRefunded).
				Where("booking_id IN (SELECT id FROM bookings WHERE client_id = ? AND status = ?)",
					m.ClientID, string(domain.BookingCancelled)).
				Update("reused", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrPaymentNotReusable
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByIDWithRelations(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var biz domain.Business
	if err := r.db.WithContext(ctx).First(&biz, b.BusinessID).Error; err == nil {
		b.Business = &biz
	}
	if b.ServiceID != nil {
		var svc domain.ServiceOffering
		if err := r.db.WithContext(ctx).First(&svc, *b.ServiceID).Error; err == nil {
			b.Service = &svc
		}
	}
	if b.CourtID != nil {
		var court domain.Court
		if err := r.db.WithContext(ctx).First(&court, *b.CourtID).Error; err == nil {
			b.Court = &court
		}
	}
	return b, nil
}

// OverlapCandidate is a booking row with the default durations of its linked
// service/court and business, so the caller can resolve an effective
// duration without extra round trips.
type OverlapCandidate struct {
	ID                     int64      `gorm:"column:id"`
	BusinessID             int64      `gorm:"column:business_id"`
	ResourceID             *int64     `gorm:"column:resource_id"`
	StartTime              time.Time  `gorm:"column:start_time"`
	DurationMinutes        int        `gorm:"column:duration_minutes"`
	Status                 string     `gorm:"column:status"`
	ServiceDurationMinutes *int       `gorm:"column:service_duration_minutes"`
	CourtDurationMinutes   *int       `gorm:"column:court_duration_minutes"`
	BusinessDefaultMinutes *int       `gorm:"column:business_default_minutes"`
}

// EffectiveDurationMinutes resolves the candidate's duration: stored value,
// then the linked service/court default, then the business default, then 60.
func (c OverlapCandidate) EffectiveDurationMinutes() int {
	if c.DurationMinutes > 0 {
		return c.DurationMinutes
	}
	if c.ServiceDurationMinutes != nil && *c.ServiceDurationMinutes > 0 {
		return *c.ServiceDurationMinutes
	}
	if c.CourtDurationMinutes != nil && *c.CourtDurationMinutes > 0 {
		return *c.CourtDurationMinutes
	}
	if c.BusinessDefaultMinutes != nil && *c.BusinessDefaultMinutes > 0 {
		return *c.BusinessDefaultMinutes
	}
	return 60
}

// Interval returns the candidate's half-open [start, end) interval.
func (c OverlapCandidate) Interval() (time.Time, time.Time) {
	return c.StartTime, c.StartTime.Add(time.Duration(c.EffectiveDurationMinutes()) * time.Minute)
}

const overlapCandidateQuery = `
SELECT b.id,
       b.business_id,
       b.resource_id,
       b.start_time,
       b.duration_minutes,
       b.status,
       s.duration_minutes AS service_duration_minutes,
       c.duration_minutes AS court_duration_minutes,
       biz.default_duration_minutes AS business_default_minutes
FROM bookings b
LEFT JOIN service_offerings s ON s.id = b.service_id
LEFT JOIN courts c ON c.id = b.court_id
LEFT JOIN businesses biz ON biz.id = b.business_id
WHERE b.business_id = ?
  AND b.status <> 'cancelled'
  AND b.start_time >= ?
  AND b.start_time < ?
`

// FindCandidates fetches every non-cancelled booking of the resource whose
// start falls in [windowStart, windowEnd). The window must already be padded
// by the maximum supported booking duration; rows starting before the window
// cannot reach into it.
func (r *BookingRepository) FindCandidates(ctx context.Context, businessID int64, resourceID *int64, windowStart, windowEnd time.Time, excludeID *int64) ([]OverlapCandidate, error) {
	q := overlapCandidateQuery
	args := []interface{}{businessID, windowStart, windowEnd}

	if resourceID != nil {
		q += "  AND b.resource_id = ?\n"
		args = append(args, *resourceID)
	} else {
		q += "  AND b.resource_id IS NULL\n"
	}
	if excludeID != nil {
		q += "  AND b.id <> ?\n"
		args = append(args, *excludeID)
	}
	q += "ORDER BY b.start_time"

	var rows []OverlapCandidate
	if err := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CancelIfActive transitions the booking to cancelled only if it is not
// already cancelled. The returned flag tells the caller whether this request
// won the race and may run the downstream refund/notification logic.
func (r *BookingRepository) CancelIfActive(ctx context.Context, id int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status <> ?", id, string(domain.BookingCancelled)).
		Updates(map[string]interface{}{
			"status":       string(domain.BookingCancelled),
			"cancelled_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteWithConsent removes an unpaid booking and its dependent consent
// record atomically.
func (r *BookingRepository) DeleteWithConsent(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&domain.ConsentRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bookingModel{}, id).Error
	})
}

func (r *BookingRepository) MarkPaid(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"paid":           true,
			"payment_status": string(domain.BookingPaymentPaid),
		}).Error
}

func (r *BookingRepository) MarkPaymentFailed(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("payment_status", string(domain.BookingPaymentFailed)).Error
}

func (r *BookingRepository) GetForClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
