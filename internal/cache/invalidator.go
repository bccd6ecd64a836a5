// Package cache holds the boundary to the read-side cache layer. The real
// invalidation backend lives outside this core; this implementation only
// records that an invalidation was requested.
package cache

import (
	"context"
	"log"
)

type LogInvalidator struct{}

func NewLogInvalidator() *LogInvalidator {
	return &LogInvalidator{}
}

func (i *LogInvalidator) InvalidateBookings(ctx context.Context, businessID int64) {
	log.Printf("level=info msg=cache invalidate bookings business_id=%d", businessID)
}

func (i *LogInvalidator) InvalidateBookingPayments(ctx context.Context, bookingID int64) {
	log.Printf("level=info msg=cache invalidate booking payments booking_id=%d", bookingID)
}
