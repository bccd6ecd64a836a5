package booking

import (
	"context"
	"time"

	"bookwise/internal/repository"
)

// ConflictDetector finds bookings whose intervals overlap a proposed one.
// Intervals are half-open: touching boundaries do not conflict.
type ConflictDetector struct {
	bookings    bookingRepo
	maxDuration time.Duration
}

func NewConflictDetector(bookings bookingRepo, maxDuration time.Duration) *ConflictDetector {
	return &ConflictDetector{bookings: bookings, maxDuration: maxDuration}
}

// FindConflicts checks [start, end) against the resource's non-cancelled
// bookings. A nil resourceID means the booking holds no resource; it is then
// checked against the business's pool of other resource-less bookings. The
// fetch window is padded by the maximum supported booking duration on both
// sides, so a long booking starting before the proposed interval is never
// missed.
func (d *ConflictDetector) FindConflicts(ctx context.Context, businessID int64, resourceID *int64, start, end time.Time, excludeID *int64) ([]repository.OverlapCandidate, error) {
	candidates, err := d.bookings.FindCandidates(ctx, businessID, resourceID, start.Add(-d.maxDuration), end.Add(d.maxDuration), excludeID)
	if err != nil {
		return nil, err
	}

	conflicts := make([]repository.OverlapCandidate, 0)
	for _, c := range candidates {
		cStart, cEnd := c.Interval()
		if start.Before(cEnd) && end.After(cStart) {
			conflicts = append(conflicts, c)
		}
	}
	return conflicts, nil
}
