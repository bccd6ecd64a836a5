package booking

import (
	"context"
	"time"

	"bookwise/internal/domain"
	"bookwise/internal/modules/notification"
	"bookwise/internal/repository"
)

type bookingRepo interface {
	Create(ctx context.Context, b *domain.Booking, reusePaymentID *int64, withConsent bool) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDWithRelations(ctx context.Context, id int64) (*domain.Booking, error)
	FindCandidates(ctx context.Context, businessID int64, resourceID *int64, windowStart, windowEnd time.Time, excludeID *int64) ([]repository.OverlapCandidate, error)
	CancelIfActive(ctx context.Context, id int64, at time.Time) (bool, error)
	DeleteWithConsent(ctx context.Context, id int64) error
	GetForClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error)
}

type catalogRepo interface {
	GetBusiness(ctx context.Context, id int64) (*domain.Business, error)
	GetService(ctx context.Context, id int64) (*domain.ServiceOffering, error)
	GetCourt(ctx context.Context, id int64) (*domain.Court, error)
	IsEmployeeOfBusiness(ctx context.Context, userID, businessID int64) (bool, error)
	IsBusinessOwner(ctx context.Context, userID, businessID int64) (bool, error)
}

type blackoutReader interface {
	GetForBusiness(ctx context.Context, businessID int64, from, to time.Time) ([]domain.BlackoutPeriod, error)
	GetForEmployee(ctx context.Context, businessID, employeeID int64, from, to time.Time) ([]domain.BlackoutPeriod, error)
}

type paymentReader interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
}

type refundProcessor interface {
	MaybeRefund(ctx context.Context, b *domain.Booking, p *domain.Payment, role domain.Role, refundRequested bool) domain.RefundOutcome
}

type notifier interface {
	BookingConfirmed(ctx context.Context, ev notification.BookingConfirmedEvent)
	BookingCancelled(ctx context.Context, ev notification.BookingCancelledEvent)
}

type cacheInvalidator interface {
	InvalidateBookings(ctx context.Context, businessID int64)
}
