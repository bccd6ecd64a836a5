package notification

import (
	"context"
	"encoding/json"
	"time"

	"bookwise/internal/domain"

	"github.com/google/uuid"
)

const (
	RouteBookingConfirmed = "booking.confirmed"
	RouteBookingCancelled = "booking.cancelled"
	RoutePaymentReceived  = "payment.received"
)

type BookingConfirmedEvent struct {
	BookingID  int64     `json:"booking_id"`
	BusinessID int64     `json:"business_id"`
	ClientID   int64     `json:"client_id"`
	StartTime  time.Time `json:"start_time"`
}

type BookingCancelledEvent struct {
	BookingID       int64  `json:"booking_id"`
	BusinessID      int64  `json:"business_id"`
	ClientID        int64  `json:"client_id"`
	RefundPerformed bool   `json:"refund_performed"`
	RefundError     string `json:"refund_error,omitempty"`
	CreditRetained  bool   `json:"credit_retained"`
}

type PaymentReceivedEvent struct {
	BookingID         int64  `json:"booking_id"`
	ExternalPaymentID string `json:"external_payment_id"`
	Amount            int64  `json:"amount"`
}

// Service writes notification tasks to the outbox. Enqueue failures are
// logged and swallowed: a broken notification path must never fail the
// booking or cancellation that triggered it.
type Service struct {
	outbox  outboxRepo
	loggerf func(format string, args ...interface{})
}

func NewService(outbox outboxRepo, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{outbox: outbox, loggerf: loggerf}
}

func (s *Service) BookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) {
	s.enqueue(ctx, RouteBookingConfirmed, ev)
}

func (s *Service) BookingCancelled(ctx context.Context, ev BookingCancelledEvent) {
	s.enqueue(ctx, RouteBookingCancelled, ev)
}

func (s *Service) PaymentReceived(ctx context.Context, ev PaymentReceivedEvent) {
	s.enqueue(ctx, RoutePaymentReceived, ev)
}

func (s *Service) enqueue(ctx context.Context, routingKey string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.loggerf("level=error msg=outbox payload marshal failed routing_key=%s err=%v", routingKey, err)
		return
	}
	task := &domain.NotificationOutbox{
		TaskID:     uuid.NewString(),
		RoutingKey: routingKey,
		Payload:    string(body),
		Status:     domain.OutboxPending,
	}
	if err := s.outbox.Enqueue(ctx, task); err != nil {
		s.loggerf("level=error msg=outbox enqueue failed routing_key=%s err=%v", routingKey, err)
	}
}
