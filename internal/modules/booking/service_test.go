package booking

import (
	"context"
	"testing"
	"time"

	"bookwise/internal/config"
	"bookwise/internal/domain"
	"bookwise/internal/modules/notification"
	"bookwise/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking, reusePaymentID *int64, withConsent bool) error {
	args := m.Called(ctx, b, reusePaymentID, withConsent)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByIDWithRelations(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindCandidates(ctx context.Context, businessID int64, resourceID *int64, windowStart, windowEnd time.Time, excludeID *int64) ([]repository.OverlapCandidate, error) {
	args := m.Called(ctx, businessID, resourceID, windowStart, windowEnd, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.OverlapCandidate), args.Error(1)
}

func (m *MockBookingRepository) CancelIfActive(ctx context.Context, id int64, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) DeleteWithConsent(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) GetForClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetBusiness(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockCatalogRepository) GetService(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceOffering), args.Error(1)
}

func (m *MockCatalogRepository) GetCourt(ctx context.Context, id int64) (*domain.Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Court), args.Error(1)
}

func (m *MockCatalogRepository) IsEmployeeOfBusiness(ctx context.Context, userID, businessID int64) (bool, error) {
	args := m.Called(ctx, userID, businessID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) IsBusinessOwner(ctx context.Context, userID, businessID int64) (bool, error) {
	args := m.Called(ctx, userID, businessID)
	return args.Bool(0), args.Error(1)
}

type MockBlackoutReader struct {
	mock.Mock
}

func (m *MockBlackoutReader) GetForBusiness(ctx context.Context, businessID int64, from, to time.Time) ([]domain.BlackoutPeriod, error) {
	args := m.Called(ctx, businessID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlackoutPeriod), args.Error(1)
}

func (m *MockBlackoutReader) GetForEmployee(ctx context.Context, businessID, employeeID int64, from, to time.Time) ([]domain.BlackoutPeriod, error) {
	args := m.Called(ctx, businessID, employeeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlackoutPeriod), args.Error(1)
}

type MockPaymentReader struct {
	mock.Mock
}

func (m *MockPaymentReader) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type MockRefundProcessor struct {
	mock.Mock
}

func (m *MockRefundProcessor) MaybeRefund(ctx context.Context, b *domain.Booking, p *domain.Payment, role domain.Role, refundRequested bool) domain.RefundOutcome {
	args := m.Called(ctx, b, p, role, refundRequested)
	return args.Get(0).(domain.RefundOutcome)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingConfirmed(ctx context.Context, ev notification.BookingConfirmedEvent) {
	m.Called(ctx, ev)
}

func (m *MockNotifier) BookingCancelled(ctx context.Context, ev notification.BookingCancelledEvent) {
	m.Called(ctx, ev)
}

type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) InvalidateBookings(ctx context.Context, businessID int64) {
	m.Called(ctx, businessID)
}

type testDeps struct {
	bookings  *MockBookingRepository
	catalog   *MockCatalogRepository
	blackouts *MockBlackoutReader
	payments  *MockPaymentReader
	refunds   *MockRefundProcessor
	notifs    *MockNotifier
	cache     *MockCacheInvalidator
}

func newTestService(now time.Time) (*Service, *testDeps) {
	d := &testDeps{
		bookings:  new(MockBookingRepository),
		catalog:   new(MockCatalogRepository),
		blackouts: new(MockBlackoutReader),
		payments:  new(MockPaymentReader),
		refunds:   new(MockRefundProcessor),
		notifs:    new(MockNotifier),
		cache:     new(MockCacheInvalidator),
	}
	cfg := &config.RuntimeConfig{
		MinLeadTime:         2 * time.Hour,
		ClientCancelWindow:  23 * time.Hour,
		ReminderCancelGrace: time.Hour,
		MaxBookingDuration:  8 * time.Hour,
	}
	detector := NewConflictDetector(d.bookings, cfg.MaxBookingDuration)
	svc := NewService(d.bookings, d.catalog, d.blackouts, d.payments, detector, d.refunds, d.notifs, d.cache, cfg, nil)
	svc.now = func() time.Time { return now }
	return svc, d
}

func int64Ptr(v int64) *int64 { return &v }

func TestService_CreateBooking_Success(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	svc, d := newTestService(start.Add(-24 * time.Hour))

	d.catalog.On("GetBusiness", mock.Anything, int64(1)).Return(&domain.Business{ID: 1, DefaultDurationMinutes: 60}, nil)
	d.catalog.On("GetService", mock.Anything, int64(7)).Return(&domain.ServiceOffering{ID: 7, BusinessID: 1, DurationMinutes: 60}, nil)
	d.bookings.On("FindCandidates", mock.Anything, int64(1), int64Ptr(5), mock.Anything, mock.Anything, (*int64)(nil)).Return([]repository.OverlapCandidate{}, nil)
	d.blackouts.On("GetForBusiness", mock.Anything, int64(1), start, start.Add(time.Hour)).Return([]domain.BlackoutPeriod{}, nil)
	d.blackouts.On("GetForEmployee", mock.Anything, int64(1), int64(5), start, start.Add(time.Hour)).Return([]domain.BlackoutPeriod{}, nil)
	d.bookings.On("Create", mock.Anything, mock.Anything, (*int64)(nil), false).Return(nil)
	d.notifs.On("BookingConfirmed", mock.Anything, mock.Anything).Return()
	d.cache.On("InvalidateBookings", mock.Anything, int64(1)).Return()
	d.bookings.On("GetByIDWithRelations", mock.Anything, int64(999)).Return(&domain.Booking{
		ID: 999, BusinessID: 1, Status: domain.BookingConfirmed, StartTime: start, DurationMinutes: 60,
	}, nil)

	b, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID: 1,
		ClientID:   42,
		ServiceID:  int64Ptr(7),
		ResourceID: int64Ptr(5),
		StartTime:  start,
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	d.notifs.AssertExpectations(t)
	d.bookings.AssertExpectations(t)
}

func TestService_CreateBooking_IneligiblePaymentReuse(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	svc, d := newTestService(start.Add(-24 * time.Hour))

	d.catalog.On("GetBusiness", mock.Anything, int64(1)).Return(&domain.Business{ID: 1, DefaultDurationMinutes: 60}, nil)
	d.catalog.On("GetService", mock.Anything, int64(7)).Return(&domain.ServiceOffering{ID: 7, BusinessID: 1, DurationMinutes: 60}, nil)
	d.bookings.On("FindCandidates", mock.Anything, int64(1), int64Ptr(5), mock.Anything, mock.Anything, (*int64)(nil)).Return([]repository.OverlapCandidate{}, nil)
	d.blackouts.On("GetForBusiness", mock.Anything, int64(1), start, start.Add(time.Hour)).Return([]domain.BlackoutPeriod{}, nil)
	d.blackouts.On("GetForEmployee", mock.Anything, int64(1), int64(5), start, start.Add(time.Hour)).Return([]domain.BlackoutPeriod{}, nil)
	// the scoped update inside the transaction matched no reusable credit
	d.bookings.On("Create", mock.Anything, mock.Anything, int64Ptr(33), false).Return(repository.ErrPaymentNotReusable)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID:     1,
		ClientID:       42,
		ServiceID:      int64Ptr(7),
		ResourceID:     int64Ptr(5),
		StartTime:      start,
		ReusePaymentID: int64Ptr(33),
	})

	assert.ErrorIs(t, err, ErrValidation)
	d.notifs.AssertNotCalled(t, "BookingConfirmed", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_OverlapSameResource(t *testing.T) {
	// employee 1 already holds 10:00-11:00; 10:30-11:30 must be rejected
	start := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)
	svc, d := newTestService(start.Add(-24 * time.Hour))

	existing := repository.OverlapCandidate{
		ID:              41,
		BusinessID:      1,
		ResourceID:      int64Ptr(1),
		StartTime:       time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          "confirmed",
	}

	d.catalog.On("GetBusiness", mock.Anything, int64(1)).Return(&domain.Business{ID: 1, DefaultDurationMinutes: 60}, nil)
	d.catalog.On("GetService", mock.Anything, int64(7)).Return(&domain.ServiceOffering{ID: 7, BusinessID: 1, DurationMinutes: 60}, nil)
	d.bookings.On("FindCandidates", mock.Anything, int64(1), int64Ptr(1), mock.Anything, mock.Anything, (*int64)(nil)).Return([]repository.OverlapCandidate{existing}, nil)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID: 1,
		ClientID:   42,
		ServiceID:  int64Ptr(7),
		ResourceID: int64Ptr(1),
		StartTime:  start,
	})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_CreateBooking_OtherResourceFree(t *testing.T) {
	// same interval on employee 2 goes through
	start := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)
	svc, d := newTestService(start.Add(-24 * time.Hour))

	d.catalog.On("GetBusiness", mock.Anything, int64(1)).Return(&domain.Business{ID: 1, DefaultDurationMinutes: 60}, nil)
	d.catalog.On("GetService", mock.Anything, int64(7)).Return(&domain.ServiceOffering{ID: 7, BusinessID: 1, DurationMinutes: 60}, nil)
	d.bookings.On("FindCandidates", mock.Anything, int64(1), int64Ptr(2), mock.Anything, mock.Anything, (*int64)(nil)).Return([]repository.OverlapCandidate{}, nil)
	d.blackouts.On("GetForBusiness", mock.Anything, int64(1), mock.Anything, mock.Anything).Return([]domain.BlackoutPeriod{}, nil)
	d.blackouts.On("GetForEmployee", mock.Anything, int64(1), int64(2), mock.Anything, mock.Anything).Return([]domain.BlackoutPeriod{}, nil)
	d.bookings.On("Create", mock.Anything, mock.Anything, (*int64)(nil), false).Return(nil)
	d.notifs.On("BookingConfirmed", mock.Anything, mock.Anything).Return()
	d.cache.On("InvalidateBookings", mock.Anything, int64(1)).Return()
	d.bookings.On("GetByIDWithRelations", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, Status: domain.BookingConfirmed}, nil)

	b, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID: 1,
		ClientID:   42,
		ServiceID:  int64Ptr(7),
		ResourceID: int64Ptr(2),
		StartTime:  start,
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
}

func TestService_CreateBooking_TouchingBoundaryAllowed(t *testing.T) {
	// 10:00-11:00 booked; a booking starting exactly at 11:00 is fine
	start := time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC)
	svc, d := newTestService(start.Add(-24 * time.Hour))

	existing := repository.OverlapCandidate{
		ID:              41,
		BusinessID:      1,
		ResourceID:      int64Ptr(1),
		StartTime:       time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          "confirmed",
	}

	d.catalog.On("GetBusiness", mock.Anything, int64(1)).Return(&domain.Business{ID: 1, DefaultDurationMinutes: 60}, nil)
	d.catalog.On("GetService", mock.Anything, int64(7)).Return(&domain.ServiceOffering{ID: 7, BusinessID: 1, DurationMinutes: 60}, nil)
	d.bookings.On("FindCandidates", mock.Anything, int64(1), int64Ptr(1), mock.Anything, mock.Anything, (*int64)(nil)).Return([]repository.OverlapCandidate{existing}, nil)
	d.blackouts.On("GetForBusiness", mock.Anything, int64(1), mock.Anything, mock.Anything).Return([]domain.BlackoutPeriod{}, nil)
	d.blackouts.On("GetForEmployee", mock.Anything, int64(1), int64(1), mock.Anything, mock.Anything).Return([]domain.BlackoutPeriod{}, nil)
	d.bookings.On("Create", mock.Anything, mock.Anything, (*int64)(nil), false).Return(nil)
	d.notifs.On("BookingConfirmed", mock.Anything, mock.Anything).Return()
	d.cache.On("InvalidateBookings", mock.Anything, int64(1)).Return()
	d.bookings.On("GetByIDWithRelations", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, Status: domain.BookingConfirmed}, nil)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID: 1,
		ClientID:   42,
		ServiceID:  int64Ptr(7),
		ResourceID: int64Ptr(1),
		StartTime:  start,
	})

	assert.NoError(t, err)
}

func TestService_CreateBooking_RequiresExactlyOneTarget(t *testing.T) {
	svc, _ := newTestService(time.Now())

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID: 1,
		ClientID:   42,
		StartTime:  time.Now().Add(48 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID: 1,
		ClientID:   42,
		ServiceID:  int64Ptr(7),
		CourtID:    int64Ptr(3),
		StartTime:  time.Now().Add(48 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_LeadTimeTooShort(t *testing.T) {
	now := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	svc, d := newTestService(now)

	d.catalog.On("GetBusiness", mock.Anything, int64(1)).Return(&domain.Business{ID: 1, DefaultDurationMinutes: 60}, nil)
	d.catalog.On("GetService", mock.Anything, int64(7)).Return(&domain.ServiceOffering{ID: 7, BusinessID: 1, DurationMinutes: 60}, nil)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID: 1,
		ClientID:   42,
		ServiceID:  int64Ptr(7),
		StartTime:  now.Add(90 * time.Minute),
	})

	assert.ErrorIs(t, err, ErrLeadTime)
}

func TestService_CreateBooking_SuspendedBusiness(t *testing.T) {
	svc, d := newTestService(time.Now())

	d.catalog.On("GetBusiness", mock.Anything, int64(1)).Return(&domain.Business{ID: 1, Suspended: true}, nil)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID: 1,
		ClientID:   42,
		ServiceID:  int64Ptr(7),
		StartTime:  time.Now().Add(48 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrSuspended)
}

func TestService_CreateBooking_Blackout(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	svc, d := newTestService(start.Add(-24 * time.Hour))

	d.catalog.On("GetBusiness", mock.Anything, int64(1)).Return(&domain.Business{ID: 1, DefaultDurationMinutes: 60}, nil)
	d.catalog.On("GetService", mock.Anything, int64(7)).Return(&domain.ServiceOffering{ID: 7, BusinessID: 1, DurationMinutes: 60}, nil)
	d.bookings.On("FindCandidates", mock.Anything, int64(1), (*int64)(nil), mock.Anything, mock.Anything, (*int64)(nil)).Return([]repository.OverlapCandidate{}, nil)
	d.blackouts.On("GetForBusiness", mock.Anything, int64(1), mock.Anything, mock.Anything).Return([]domain.BlackoutPeriod{
		{Start: start.Add(-time.Hour), End: start.Add(2 * time.Hour), Reason: "public holiday"},
	}, nil)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID: 1,
		ClientID:   42,
		ServiceID:  int64Ptr(7),
		StartTime:  start,
	})

	assert.ErrorIs(t, err, ErrBlackout)
}

func TestService_CreateBooking_ConsentFormPending(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	svc, d := newTestService(start.Add(-24 * time.Hour))

	d.catalog.On("GetBusiness", mock.Anything, int64(2)).Return(&domain.Business{ID: 2, RequiresConsentForm: true, DefaultDurationMinutes: 45}, nil)
	d.catalog.On("GetService", mock.Anything, int64(8)).Return(&domain.ServiceOffering{ID: 8, BusinessID: 2, DurationMinutes: 45}, nil)
	d.bookings.On("FindCandidates", mock.Anything, int64(2), (*int64)(nil), mock.Anything, mock.Anything, (*int64)(nil)).Return([]repository.OverlapCandidate{}, nil)
	d.blackouts.On("GetForBusiness", mock.Anything, int64(2), mock.Anything, mock.Anything).Return([]domain.BlackoutPeriod{}, nil)

	var created *domain.Booking
	d.bookings.On("Create", mock.Anything, mock.Anything, (*int64)(nil), true).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.Booking)
	}).Return(nil)
	d.cache.On("InvalidateBookings", mock.Anything, int64(2)).Return()
	d.bookings.On("GetByIDWithRelations", mock.Anything, int64(999)).Return(&domain.Booking{ID: 999, Status: domain.BookingPendingConsent}, nil)

	b, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		BusinessID: 2,
		ClientID:   42,
		ServiceID:  int64Ptr(8),
		StartTime:  start,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPendingConsent, b.Status)
	assert.Equal(t, domain.BookingPendingConsent, created.Status)
	// no confirmation goes out until consent is signed
	d.notifs.AssertNotCalled(t, "BookingConfirmed", mock.Anything, mock.Anything)
}

func TestService_CancelBooking_ClientInsideWindow(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	now := start.Add(-20 * time.Hour) // 20h before start, window is 23h
	svc, d := newTestService(now)

	d.bookings.On("GetByID", mock.Anything, int64(50)).Return(&domain.Booking{
		ID: 50, BusinessID: 1, ClientID: 42, StartTime: start, DurationMinutes: 60,
		Status: domain.BookingConfirmed,
	}, nil)

	_, err := svc.CancelBooking(context.Background(), 50, 42, domain.RoleClient, false)

	assert.ErrorIs(t, err, ErrCancelWindow)
	d.bookings.AssertNotCalled(t, "CancelIfActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelBooking_OwnerBypassesWindow(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	now := start.Add(-20 * time.Hour)
	svc, d := newTestService(now)

	d.bookings.On("GetByID", mock.Anything, int64(50)).Return(&domain.Booking{
		ID: 50, BusinessID: 1, ClientID: 42, StartTime: start, DurationMinutes: 60,
		Status: domain.BookingConfirmed,
	}, nil)
	d.catalog.On("IsBusinessOwner", mock.Anything, int64(7), int64(1)).Return(true, nil)
	d.bookings.On("CancelIfActive", mock.Anything, int64(50), now).Return(true, nil)
	d.bookings.On("DeleteWithConsent", mock.Anything, int64(50)).Return(nil)
	d.notifs.On("BookingCancelled", mock.Anything, mock.Anything).Return()
	d.cache.On("InvalidateBookings", mock.Anything, int64(1)).Return()

	resp, err := svc.CancelBooking(context.Background(), 50, 7, domain.RoleBusinessOwner, false)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.RefundPerformed)
}

func TestService_CancelBooking_ReminderTightensDeadline(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	reminderAt := start.Add(-48 * time.Hour)
	now := reminderAt.Add(90 * time.Minute) // past reminder+1h, still before start-23h
	svc, d := newTestService(now)

	d.bookings.On("GetByID", mock.Anything, int64(50)).Return(&domain.Booking{
		ID: 50, BusinessID: 1, ClientID: 42, StartTime: start, DurationMinutes: 60,
		Status: domain.BookingConfirmed, ReminderSentAt: &reminderAt,
	}, nil)

	_, err := svc.CancelBooking(context.Background(), 50, 42, domain.RoleClient, false)

	assert.ErrorIs(t, err, ErrCancelWindow)
}

func TestService_CancelBooking_AlreadyCancelled(t *testing.T) {
	svc, d := newTestService(time.Now())

	d.bookings.On("GetByID", mock.Anything, int64(50)).Return(&domain.Booking{
		ID: 50, ClientID: 42, Status: domain.BookingCancelled,
	}, nil)

	_, err := svc.CancelBooking(context.Background(), 50, 42, domain.RoleClient, false)

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestService_CancelBooking_LostRace(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	now := start.Add(-48 * time.Hour)
	svc, d := newTestService(now)

	d.bookings.On("GetByID", mock.Anything, int64(50)).Return(&domain.Booking{
		ID: 50, BusinessID: 1, ClientID: 42, StartTime: start, DurationMinutes: 60,
		Status: domain.BookingConfirmed, Paid: true,
	}, nil)
	// another request flipped the row first
	d.bookings.On("CancelIfActive", mock.Anything, int64(50), now).Return(false, nil)

	_, err := svc.CancelBooking(context.Background(), 50, 42, domain.RoleClient, true)

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	d.refunds.AssertNotCalled(t, "MaybeRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelBooking_PaidTriggersRefund(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	now := start.Add(-48 * time.Hour)
	svc, d := newTestService(now)

	b := &domain.Booking{
		ID: 50, BusinessID: 1, ClientID: 42, StartTime: start, DurationMinutes: 60,
		Status: domain.BookingConfirmed, Paid: true, PaymentMethod: domain.PaymentMethodCard,
	}
	p := &domain.Payment{ID: 9, BookingID: int64Ptr(50), Amount: 15000, Status: domain.PaymentSucceeded}

	d.bookings.On("GetByID", mock.Anything, int64(50)).Return(b, nil)
	d.bookings.On("CancelIfActive", mock.Anything, int64(50), now).Return(true, nil)
	d.payments.On("GetByBookingID", mock.Anything, int64(50)).Return(p, nil)
	d.refunds.On("MaybeRefund", mock.Anything, b, p, domain.RoleClient, true).Return(domain.RefundOutcome{Performed: true})
	d.notifs.On("BookingCancelled", mock.Anything, mock.MatchedBy(func(ev notification.BookingCancelledEvent) bool {
		return ev.RefundPerformed
	})).Return()
	d.cache.On("InvalidateBookings", mock.Anything, int64(1)).Return()

	resp, err := svc.CancelBooking(context.Background(), 50, 42, domain.RoleClient, true)

	assert.NoError(t, err)
	assert.True(t, resp.RefundPerformed)
	// paid bookings are kept for the payment audit trail
	d.bookings.AssertNotCalled(t, "DeleteWithConsent", mock.Anything, mock.Anything)
}

func TestService_CancelBooking_RefundFailureDoesNotFailCancel(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	now := start.Add(-48 * time.Hour)
	svc, d := newTestService(now)

	b := &domain.Booking{
		ID: 50, BusinessID: 1, ClientID: 42, StartTime: start, DurationMinutes: 60,
		Status: domain.BookingConfirmed, Paid: true, PaymentMethod: domain.PaymentMethodCard,
	}
	p := &domain.Payment{ID: 9, BookingID: int64Ptr(50), Amount: 15000, Status: domain.PaymentSucceeded}

	d.bookings.On("GetByID", mock.Anything, int64(50)).Return(b, nil)
	d.bookings.On("CancelIfActive", mock.Anything, int64(50), now).Return(true, nil)
	d.payments.On("GetByBookingID", mock.Anything, int64(50)).Return(p, nil)
	d.refunds.On("MaybeRefund", mock.Anything, b, p, domain.RoleClient, true).Return(domain.RefundOutcome{Error: "provider unreachable"})
	d.notifs.On("BookingCancelled", mock.Anything, mock.Anything).Return()
	d.cache.On("InvalidateBookings", mock.Anything, int64(1)).Return()

	resp, err := svc.CancelBooking(context.Background(), 50, 42, domain.RoleClient, true)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.RefundPerformed)
	assert.Equal(t, "provider unreachable", resp.RefundError)
}

func TestService_CancelBooking_ForbiddenForStranger(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	svc, d := newTestService(start.Add(-48 * time.Hour))

	d.bookings.On("GetByID", mock.Anything, int64(50)).Return(&domain.Booking{
		ID: 50, BusinessID: 1, ClientID: 42, StartTime: start, Status: domain.BookingConfirmed,
	}, nil)

	_, err := svc.CancelBooking(context.Background(), 50, 777, domain.RoleClient, false)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_GetBooking_NotFound(t *testing.T) {
	svc, d := newTestService(time.Now())

	d.bookings.On("GetByIDWithRelations", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetBooking(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}
