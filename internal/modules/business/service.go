package business

import (
	"context"
)

// Service covers the moderation surface: suspending a business blocks new
// bookings for it while existing ones stay untouched.
type Service struct {
	businesses businessRepo
	loggerf    func(format string, args ...interface{})
}

func NewService(businesses businessRepo, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{businesses: businesses, loggerf: loggerf}
}

func (s *Service) SetSuspended(ctx context.Context, businessID int64, suspended bool) error {
	found, err := s.businesses.SetBusinessSuspended(ctx, businessID, suspended)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	s.loggerf("level=info msg=business suspension changed business_id=%d suspended=%t", businessID, suspended)
	return nil
}
