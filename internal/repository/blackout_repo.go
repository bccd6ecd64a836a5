package repository

import (
	"context"
	"time"

	"bookwise/internal/domain"

	"gorm.io/gorm"
)

type BlackoutRepository struct {
	db *gorm.DB
}

func NewBlackoutRepository(db *gorm.DB) *BlackoutRepository {
	return &BlackoutRepository{db: db}
}

// GetForBusiness returns business-wide blackouts intersecting [from, to).
func (r *BlackoutRepository) GetForBusiness(ctx context.Context, businessID int64, from, to time.Time) ([]domain.BlackoutPeriod, error) {
	var rows []domain.Holiday
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND start_date < ? AND end_date > ?", businessID, to, from).
		Order("start_date").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.BlackoutPeriod, 0, len(rows))
	for _, h := range rows {
		out = append(out, domain.BlackoutPeriod{Start: h.StartDate, End: h.EndDate, Reason: h.Reason})
	}
	return out, nil
}

// GetForEmployee returns resource-scoped blackouts intersecting [from, to).
func (r *BlackoutRepository) GetForEmployee(ctx context.Context, businessID, employeeID int64, from, to time.Time) ([]domain.BlackoutPeriod, error) {
	var rows []domain.EmployeeHoliday
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND employee_id = ? AND start_date < ? AND end_date > ?", businessID, employeeID, to, from).
		Order("start_date").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.BlackoutPeriod, 0, len(rows))
	for _, h := range rows {
		out = append(out, domain.BlackoutPeriod{Start: h.StartDate, End: h.EndDate, Reason: h.Reason})
	}
	return out, nil
}
