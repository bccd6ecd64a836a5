package booking

import "time"

type CreateBookingRequest struct {
	BusinessID      int64     `json:"business_id" binding:"required"`
	ClientID        int64     `json:"client_id"`
	ServiceID       *int64    `json:"service_id"`
	CourtID         *int64    `json:"court_id"`
	ResourceID      *int64    `json:"resource_id"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes *int      `json:"duration_minutes"`
	PaymentMethod   string    `json:"payment_method"`
	Paid            bool      `json:"paid"`
	ReusePaymentID  *int64    `json:"reuse_payment_id"`
}

type CancelBookingRequest struct {
	RefundPayment bool `json:"refund_payment"`
}

type CancelBookingResponse struct {
	Success         bool   `json:"success"`
	RefundPerformed bool   `json:"refund_performed"`
	RefundError     string `json:"refund_error,omitempty"`
	Message         string `json:"message"`
}
