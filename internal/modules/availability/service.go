package availability

import (
	"context"
	"sort"
	"time"

	"bookwise/internal/config"
	"bookwise/internal/domain"
	"bookwise/internal/repository"
)

type window struct {
	start time.Time
	end   time.Time
}

type Service struct {
	bookings  bookingReader
	blackouts blackoutReader
	hours     workingHoursReader
	cfg       *config.RuntimeConfig
	now       func() time.Time
}

func NewService(bookings bookingReader, blackouts blackoutReader, hours workingHoursReader, cfg *config.RuntimeConfig) *Service {
	return &Service{
		bookings:  bookings,
		blackouts: blackouts,
		hours:     hours,
		cfg:       cfg,
		now:       time.Now,
	}
}

// DaySlots enumerates the candidate start times of one day and classifies
// each one. The result is a pure function of the stored schedule, blackouts
// and bookings; re-running it yields the same sequence.
func (s *Service) DaySlots(ctx context.Context, req DaySlotsRequest) (*DaySlotsResponse, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	cfg, err := s.hours.GetForBusinessDay(ctx, req.BusinessID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	resp := &DaySlotsResponse{
		BusinessID: req.BusinessID,
		ResourceID: req.ResourceID,
		Date:       req.Date,
		Slots:      []Slot{},
	}
	if !cfg.Enabled || len(cfg.Windows) == 0 {
		return resp, nil
	}

	windows, err := resolveWindows(cfg.Windows, day)
	if err != nil {
		return nil, err
	}
	merged := mergeWindows(windows)

	step := s.cfg.SlotStep(req.ResourceKind)
	duration := time.Duration(req.DurationMinutes) * time.Minute
	if duration <= 0 {
		duration = step
	}

	dayEnd := day.Add(24 * time.Hour)

	blackouts, err := s.blackouts.GetForBusiness(ctx, req.BusinessID, day, dayEnd)
	if err != nil {
		return nil, err
	}
	if req.ResourceKind == string(domain.ResourceEmployee) && req.ResourceID != nil {
		employeeBlackouts, err := s.blackouts.GetForEmployee(ctx, req.BusinessID, *req.ResourceID, day, dayEnd)
		if err != nil {
			return nil, err
		}
		blackouts = append(blackouts, employeeBlackouts...)
	}

	// fetch once for the whole day, padded so long bookings starting before
	// the day still count
	candidates, err := s.bookings.FindCandidates(ctx, req.BusinessID, req.ResourceID, day.Add(-s.cfg.MaxBookingDuration), dayEnd, nil)
	if err != nil {
		return nil, err
	}

	now := s.now()
	minStart := now.Add(s.cfg.MinLeadTime)

	for _, w := range windows {
		for start := w.start; start.Before(w.end); start = start.Add(step) {
			end := start.Add(duration)
			slot := Slot{Start: start}

			switch {
			case start.Before(now):
				slot.Status = SlotPast
			case start.Before(minStart):
				slot.Status = SlotTooSoon
			case !coveredByWindows(merged, start, end) || intersectsBlackout(blackouts, start, end):
				slot.Status = SlotBlocked
			case overlapsCandidate(candidates, start, end):
				slot.Status = SlotBooked
			default:
				slot.Status = SlotAvailable
			}

			resp.Slots = append(resp.Slots, slot)
		}
	}

	return resp, nil
}

func resolveWindows(raw []domain.WorkingWindow, day time.Time) ([]window, error) {
	out := make([]window, 0, len(raw))
	for _, w := range raw {
		openT, err := time.Parse("15:04", w.OpenTime)
		if err != nil {
			return nil, err
		}
		closeT, err := time.Parse("15:04", w.CloseTime)
		if err != nil {
			return nil, err
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), openT.Hour(), openT.Minute(), 0, 0, time.UTC)
		end := time.Date(day.Year(), day.Month(), day.Day(), closeT.Hour(), closeT.Minute(), 0, 0, time.UTC)
		if end.After(start) {
			out = append(out, window{start: start, end: end})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })
	return out, nil
}

func mergeWindows(in []window) []window {
	if len(in) == 0 {
		return nil
	}
	merged := []window{in[0]}
	for _, w := range in[1:] {
		last := &merged[len(merged)-1]
		if !w.start.After(last.end) {
			if w.end.After(last.end) {
				last.end = w.end
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// coveredByWindows verifies that [start, end) lies fully inside one merged
// working window. Checking only the boundary points would pass a candidate
// crossing an unconfigured break; the whole interval must be covered.
func coveredByWindows(merged []window, start, end time.Time) bool {
	for _, w := range merged {
		if !start.Before(w.start) && !end.After(w.end) {
			return true
		}
	}
	return false
}

func intersectsBlackout(blackouts []domain.BlackoutPeriod, start, end time.Time) bool {
	for _, b := range blackouts {
		if b.Covers(start, end) {
			return true
		}
	}
	return false
}

func overlapsCandidate(candidates []repository.OverlapCandidate, start, end time.Time) bool {
	for _, c := range candidates {
		cStart, cEnd := c.Interval()
		if start.Before(cEnd) && end.After(cStart) {
			return true
		}
	}
	return false
}
