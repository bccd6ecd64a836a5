package repository

import (
	"context"
	"errors"

	"bookwise/internal/domain"

	"gorm.io/gorm"
)

type WorkingHoursRepository interface {
	GetForBusinessDay(ctx context.Context, businessID int64, dayOfWeek int) (*domain.WorkingHoursConfig, error)
	GetForBusiness(ctx context.Context, businessID int64) ([]domain.WorkingHoursConfig, error)
	Save(ctx context.Context, cfg *domain.WorkingHoursConfig) error
}

type workingHoursRepository struct {
	db *gorm.DB
}

func NewWorkingHoursRepository(db *gorm.DB) WorkingHoursRepository {
	return &workingHoursRepository{db: db}
}

func (r *workingHoursRepository) GetForBusinessDay(ctx context.Context, businessID int64, dayOfWeek int) (*domain.WorkingHoursConfig, error) {
	var cfg domain.WorkingHoursConfig
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND day_of_week = ? AND employee_id IS NULL", businessID, dayOfWeek).
		First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// business never configured a schedule: default hours
			defaults := domain.DefaultWorkingHours(businessID)
			return &defaults[dayOfWeek], nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *workingHoursRepository) GetForBusiness(ctx context.Context, businessID int64) ([]domain.WorkingHoursConfig, error) {
	var rows []domain.WorkingHoursConfig
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND employee_id IS NULL", businessID).
		Order("day_of_week").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return domain.DefaultWorkingHours(businessID), nil
	}
	return rows, nil
}

func (r *workingHoursRepository) Save(ctx context.Context, cfg *domain.WorkingHoursConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
