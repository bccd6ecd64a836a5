package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookwise/internal/config"
	"bookwise/internal/domain"
	"bookwise/internal/modules/notification"
	"bookwise/internal/pkg/validator"
	"bookwise/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings  bookingRepo
	catalog   catalogRepo
	blackouts blackoutReader
	payments  paymentReader
	conflicts *ConflictDetector
	policy    CancellationPolicy
	refunds   refundProcessor
	notifs    notifier
	cache     cacheInvalidator
	cfg       *config.RuntimeConfig
	now       func() time.Time
	loggerf   func(format string, args ...interface{})
}

func NewService(
	bookings bookingRepo,
	catalog catalogRepo,
	blackouts blackoutReader,
	payments paymentReader,
	conflicts *ConflictDetector,
	refunds refundProcessor,
	notifs notifier,
	cache cacheInvalidator,
	cfg *config.RuntimeConfig,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		bookings:  bookings,
		catalog:   catalog,
		blackouts: blackouts,
		payments:  payments,
		conflicts: conflicts,
		policy: CancellationPolicy{
			ClientWindow:  cfg.ClientCancelWindow,
			ReminderGrace: cfg.ReminderCancelGrace,
		},
		refunds: refunds,
		notifs:  notifs,
		cache:   cache,
		cfg:     cfg,
		now:     time.Now,
		loggerf: loggerf,
	}
}

// CreateBooking runs the creation state machine: resource selection checks,
// lead time, conflicts, blackouts, then the insert. The conflict check and
// the insert are backstopped by the idx_no_double_booking exclusion
// constraint, so a concurrently committing request cannot sneak an overlap
// in between.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if (req.ServiceID == nil) == (req.CourtID == nil) {
		return nil, fmt.Errorf("%w: exactly one of service_id and court_id must be set", ErrValidation)
	}

	biz, err := s.catalog.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if biz.Suspended {
		return nil, ErrSuspended
	}

	b := &domain.Booking{
		BusinessID:    req.BusinessID,
		ClientID:      req.ClientID,
		StartTime:     req.StartTime,
		Paid:          req.Paid,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		PaymentStatus: domain.BookingPaymentPending,
		PaymentReused: req.ReusePaymentID != nil,
	}

	if req.ServiceID != nil {
		svc, err := s.catalog.GetService(ctx, *req.ServiceID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if svc.BusinessID != req.BusinessID {
			return nil, ErrNotFound
		}
		b.ServiceID = req.ServiceID
		b.DurationMinutes = svc.DurationMinutes
		if req.ResourceID != nil {
			b.ResourceKind = domain.ResourceEmployee
			b.ResourceID = req.ResourceID
		} else {
			b.ResourceKind = domain.ResourceNone
		}
	} else {
		court, err := s.catalog.GetCourt(ctx, *req.CourtID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if court.BusinessID != req.BusinessID {
			return nil, ErrNotFound
		}
		b.CourtID = req.CourtID
		b.ResourceKind = domain.ResourceCourt
		b.ResourceID = req.CourtID
		b.DurationMinutes = court.DurationMinutes
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: duration_minutes must be positive", ErrValidation)
		}
		b.DurationMinutes = *req.DurationMinutes
	}
	if b.DurationMinutes <= 0 {
		b.DurationMinutes = biz.DefaultDurationMinutes
	}
	if time.Duration(b.DurationMinutes)*time.Minute > s.cfg.MaxBookingDuration {
		return nil, fmt.Errorf("%w: duration exceeds the supported maximum", ErrValidation)
	}
	if errs := validator.Validate(b); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	now := s.now()
	if b.StartTime.Sub(now) < s.cfg.MinLeadTime {
		return nil, ErrLeadTime
	}

	end := b.EndTime()

	conflicts, err := s.conflicts.FindConflicts(ctx, b.BusinessID, b.ResourceID, b.StartTime, end, nil)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		ids := make([]int64, 0, len(conflicts))
		for _, c := range conflicts {
			ids = append(ids, c.ID)
		}
		return nil, fmt.Errorf("%w: overlaps booking(s) %v", ErrConflict, ids)
	}

	if err := s.checkBlackouts(ctx, b, end); err != nil {
		return nil, err
	}

	if biz.RequiresConsentForm {
		b.Status = domain.BookingPendingConsent
	} else {
		b.Status = domain.BookingConfirmed
	}

	if err := s.bookings.Create(ctx, b, req.ReusePaymentID, biz.RequiresConsentForm); err != nil {
		if errors.Is(err, repository.ErrPaymentNotReusable) {
			return nil, fmt.Errorf("%w: reuse_payment_id does not reference a reusable credit of this client", ErrValidation)
		}
		if pgErr, ok := err.(*pgconn.PgError); ok {
			// 23P01 exclusion_violation: a concurrent request won the slot
			if (pgErr.Code == "23P01" || pgErr.Code == "23505") && pgErr.ConstraintName == "idx_no_double_booking" {
				return nil, fmt.Errorf("%w: slot was taken by a concurrent booking", ErrConflict)
			}
		}
		return nil, err
	}

	if s.notifs != nil && b.Status == domain.BookingConfirmed {
		s.notifs.BookingConfirmed(ctx, notification.BookingConfirmedEvent{
			BookingID:  b.ID,
			BusinessID: b.BusinessID,
			ClientID:   b.ClientID,
			StartTime:  b.StartTime,
		})
	}
	if s.cache != nil {
		s.cache.InvalidateBookings(ctx, b.BusinessID)
	}

	return s.bookings.GetByIDWithRelations(ctx, b.ID)
}

func (s *Service) checkBlackouts(ctx context.Context, b *domain.Booking, end time.Time) error {
	business, err := s.blackouts.GetForBusiness(ctx, b.BusinessID, b.StartTime, end)
	if err != nil {
		return err
	}
	for _, p := range business {
		if p.Covers(b.StartTime, end) {
			return fmt.Errorf("%w: %s", ErrBlackout, p.Reason)
		}
	}
	if b.ResourceKind == domain.ResourceEmployee && b.ResourceID != nil {
		scoped, err := s.blackouts.GetForEmployee(ctx, b.BusinessID, *b.ResourceID, b.StartTime, end)
		if err != nil {
			return err
		}
		for _, p := range scoped {
			if p.Covers(b.StartTime, end) {
				return fmt.Errorf("%w: %s", ErrBlackout, p.Reason)
			}
		}
	}
	return nil
}

// CancelBooking applies the cancellation policy, transitions the booking
// with a conditional update so racing cancellations cannot double-refund,
// and then runs the refund and notification side effects. A refund failure
// is reported in the result, never a reason to fail the cancellation.
func (s *Service) CancelBooking(ctx context.Context, bookingID, actorUserID int64, actorRole domain.Role, refundRequested bool) (*CancelBookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.Status == domain.BookingCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.authorizeCancel(ctx, b, actorUserID, actorRole); err != nil {
		return nil, err
	}

	now := s.now()
	decision := s.policy.CanCancel(actorRole, b, now)
	if !decision.Allowed {
		if b.Status == domain.BookingCancelled {
			return nil, ErrAlreadyCancelled
		}
		return nil, fmt.Errorf("%w: %s", ErrCancelWindow, decision.Reason)
	}

	won, err := s.bookings.CancelIfActive(ctx, bookingID, now)
	if err != nil {
		return nil, err
	}
	if !won {
		// another request cancelled first; no side effects from this one
		return nil, ErrAlreadyCancelled
	}

	outcome := domain.RefundOutcome{}
	if b.Paid {
		payment, perr := s.payments.GetByBookingID(ctx, bookingID)
		if perr != nil && perr != gorm.ErrRecordNotFound {
			s.loggerf("level=error msg=payment lookup failed during cancel booking_id=%d err=%v", bookingID, perr)
		}
		if perr == nil && s.refunds != nil {
			outcome = s.refunds.MaybeRefund(ctx, b, payment, actorRole, refundRequested)
			if outcome.Error != "" {
				s.loggerf("level=error msg=refund failed during cancel booking_id=%d err=%s", bookingID, outcome.Error)
			}
		}
	} else {
		// unpaid bookings leave no trace: row and consent record go together
		if err := s.bookings.DeleteWithConsent(ctx, bookingID); err != nil {
			s.loggerf("level=error msg=unpaid booking delete failed booking_id=%d err=%v", bookingID, err)
		}
	}

	if s.notifs != nil {
		s.notifs.BookingCancelled(ctx, notification.BookingCancelledEvent{
			BookingID:       b.ID,
			BusinessID:      b.BusinessID,
			ClientID:        b.ClientID,
			RefundPerformed: outcome.Performed,
			RefundError:     outcome.Error,
			CreditRetained:  outcome.CreditRetained,
		})
	}
	if s.cache != nil {
		s.cache.InvalidateBookings(ctx, b.BusinessID)
	}

	msg := "booking cancelled"
	switch {
	case outcome.Performed:
		msg = "booking cancelled, refund issued"
	case outcome.CreditRetained:
		msg = "booking cancelled, payment retained as credit"
	case outcome.Error != "":
		msg = "booking cancelled, refund failed"
	}

	return &CancelBookingResponse{
		Success:         true,
		RefundPerformed: outcome.Performed,
		RefundError:     outcome.Error,
		Message:         msg,
	}, nil
}

func (s *Service) authorizeCancel(ctx context.Context, b *domain.Booking, actorUserID int64, actorRole domain.Role) error {
	switch actorRole {
	case domain.RoleAdmin:
		return nil
	case domain.RoleBusinessOwner:
		ok, err := s.catalog.IsBusinessOwner(ctx, actorUserID, b.BusinessID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrForbidden
		}
		return nil
	case domain.RoleEmployee:
		ok, err := s.catalog.IsEmployeeOfBusiness(ctx, actorUserID, b.BusinessID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrForbidden
		}
		return nil
	default:
		if b.ClientID != actorUserID {
			return ErrForbidden
		}
		return nil
	}
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByIDWithRelations(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) GetMyBookings(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.GetForClient(ctx, clientID, limit, offset)
}
