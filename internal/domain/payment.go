package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID                int64         `gorm:"primaryKey" json:"id"`
	ExternalPaymentID string        `gorm:"uniqueIndex;type:varchar(64);not null" json:"external_payment_id"`
	BookingID         *int64        `gorm:"index" json:"booking_id,omitempty"`
	Amount            int64         `gorm:"not null" json:"amount"` // minor units
	Method            PaymentMethod `gorm:"type:varchar(16);not null" json:"method"`
	Status            PaymentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Reused            bool          `gorm:"default:false" json:"reused"`
	Metadata          string        `gorm:"type:text" json:"metadata"`
	FailureReason     string        `gorm:"type:text" json:"failure_reason"`
	RefundedAt        *time.Time    `json:"refunded_at,omitempty"`
	PaidAt            *time.Time    `json:"paid_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
