package availability

import (
	"context"
	"time"

	"bookwise/internal/domain"
	"bookwise/internal/repository"
)

type bookingReader interface {
	FindCandidates(ctx context.Context, businessID int64, resourceID *int64, windowStart, windowEnd time.Time, excludeID *int64) ([]repository.OverlapCandidate, error)
}

type blackoutReader interface {
	GetForBusiness(ctx context.Context, businessID int64, from, to time.Time) ([]domain.BlackoutPeriod, error)
	GetForEmployee(ctx context.Context, businessID, employeeID int64, from, to time.Time) ([]domain.BlackoutPeriod, error)
}

type workingHoursReader interface {
	GetForBusinessDay(ctx context.Context, businessID int64, dayOfWeek int) (*domain.WorkingHoursConfig, error)
}
