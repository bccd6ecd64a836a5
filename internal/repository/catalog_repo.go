package repository

import (
	"context"

	"bookwise/internal/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetBusiness(ctx context.Context, id int64) (*domain.Business, error) {
	var b domain.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *CatalogRepository) GetService(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	var s domain.ServiceOffering
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepository) GetCourt(ctx context.Context, id int64) (*domain.Court, error) {
	var c domain.Court
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepository) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	var e domain.Employee
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// SetBusinessSuspended flips the suspension flag. Returns false when no
// business with that id exists.
func (r *CatalogRepository) SetBusinessSuspended(ctx context.Context, businessID int64, suspended bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Business{}).
		Where("id = ?", businessID).
		Update("suspended", suspended)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IsEmployeeOfBusiness reports whether the user works for the business.
func (r *CatalogRepository) IsEmployeeOfBusiness(ctx context.Context, userID, businessID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		Count(&cnt).Error
	return cnt > 0, err
}

// IsBusinessOwner reports whether the user owns the business.
func (r *CatalogRepository) IsBusinessOwner(ctx context.Context, userID, businessID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Business{}).
		Where("id = ? AND owner_user_id = ?", businessID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}
