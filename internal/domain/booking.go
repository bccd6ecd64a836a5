package domain

import "time"

type BookingStatus string

const (
	BookingPendingConsent BookingStatus = "pending_consent"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingCancelled      BookingStatus = "cancelled"
	BookingCompleted      BookingStatus = "completed"
)

type ResourceKind string

const (
	ResourceEmployee ResourceKind = "employee"
	ResourceCourt    ResourceKind = "court"
	ResourceNone     ResourceKind = "none"
)

type BookingPaymentStatus string

const (
	BookingPaymentPending BookingPaymentStatus = "pending"
	BookingPaymentPaid    BookingPaymentStatus = "paid"
	BookingPaymentFailed  BookingPaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

type Booking struct {
	ID              int64                `json:"id"`
	BusinessID      int64                `json:"business_id" validate:"required"`
	ClientID        int64                `json:"client_id" validate:"required"`
	ResourceKind    ResourceKind         `json:"resource_kind"`
	ResourceID      *int64               `json:"resource_id,omitempty"`
	ServiceID       *int64               `json:"service_id,omitempty"`
	CourtID         *int64               `json:"court_id,omitempty"`
	StartTime       time.Time            `json:"start_time" validate:"required"`
	DurationMinutes int                  `json:"duration_minutes" validate:"required,gt=0"`
	Status          BookingStatus        `json:"status"`
	Paid            bool                 `json:"paid"`
	PaymentMethod   PaymentMethod        `json:"payment_method"`
	PaymentStatus   BookingPaymentStatus `json:"payment_status"`
	PaymentReused   bool                 `json:"payment_reused"`
	ReminderSentAt  *time.Time           `json:"reminder_sent_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	CancelledAt     *time.Time           `json:"cancelled_at,omitempty"`

	Business *Business        `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	Service  *ServiceOffering `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Court    *Court           `json:"court,omitempty" gorm:"foreignKey:CourtID"`
}

// EndTime derives the half-open end of the booked interval.
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}
