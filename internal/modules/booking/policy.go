package booking

import (
	"fmt"
	"time"

	"bookwise/internal/domain"
)

// CancellationPolicy decides whether an actor may cancel a booking now.
type CancellationPolicy struct {
	ClientWindow  time.Duration // minimum time before start a client may cancel
	ReminderGrace time.Duration // cancel grace after a reminder was sent
}

type PolicyDecision struct {
	Allowed bool
	Reason  string
}

// CanCancel applies the cancellation rules. Staff roles bypass every time
// window; clients get the stricter of the lead-time deadline and, when a
// reminder already went out, the reminder grace deadline. A cancelled
// booking is never cancellable again.
func (p CancellationPolicy) CanCancel(role domain.Role, b *domain.Booking, now time.Time) PolicyDecision {
	if b.Status == domain.BookingCancelled {
		return PolicyDecision{Allowed: false, Reason: "booking is already cancelled"}
	}

	if role.IsStaff() {
		return PolicyDecision{Allowed: true}
	}

	deadline := b.StartTime.Add(-p.ClientWindow)
	if b.ReminderSentAt != nil {
		reminderDeadline := b.ReminderSentAt.Add(p.ReminderGrace)
		if reminderDeadline.Before(deadline) {
			deadline = reminderDeadline
		}
	}

	if now.After(deadline) {
		return PolicyDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("cancellation deadline passed at %s", deadline.UTC().Format(time.RFC3339)),
		}
	}
	return PolicyDecision{Allowed: true}
}
