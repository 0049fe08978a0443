package cancellation

import (
	"time"

	"stagebook/internal/shared/apperr"
)

// DefaultWindow is how long before a performance cancellation closes
const DefaultWindow = 24 * time.Hour

var ErrDeadlinePassed = apperr.New(apperr.KindInvalidState, "CANCELLATION_DEADLINE_PASSED", "cancellation deadline has passed")

// Policy decides whether a confirmed booking may still be cancelled.
// A booking can be cancelled strictly before performance date minus Window.
type Policy struct {
	Window time.Duration
}

// NewPolicy returns a policy with the given window, DefaultWindow when window <= 0
func NewPolicy(window time.Duration) Policy {
	if window <= 0 {
		window = DefaultWindow
	}
	return Policy{Window: window}
}

// Deadline is the last instant before which cancellation is allowed
func (p Policy) Deadline(performanceDate time.Time) time.Time {
	return performanceDate.Add(-p.Window)
}

func (p Policy) CanCancel(active bool, performanceDate, now time.Time) bool {
	return active && now.Before(p.Deadline(performanceDate))
}

// Check returns ErrDeadlinePassed with the deadline as detail when now is too late
func (p Policy) Check(performanceDate, now time.Time) error {
	deadline := p.Deadline(performanceDate)
	if !now.Before(deadline) {
		return ErrDeadlinePassed.WithDetail("cancellation closed at " + deadline.UTC().Format(time.RFC3339))
	}
	return nil
}

// HoursUntilDeadline counts whole hours left, 0 for inactive bookings or a passed deadline
func (p Policy) HoursUntilDeadline(active bool, performanceDate, now time.Time) int {
	if !active {
		return 0
	}
	left := p.Deadline(performanceDate).Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left / time.Hour)
}

// Info summarizes the cancellation state of a booking for clients
type Info struct {
	CanCancel          bool      `json:"can_cancel"`
	Deadline           time.Time `json:"cancellation_deadline"`
	HoursUntilDeadline int       `json:"hours_until_deadline"`
}

func (p Policy) Describe(active bool, performanceDate, now time.Time) Info {
	return Info{
		CanCancel:          p.CanCancel(active, performanceDate, now),
		Deadline:           p.Deadline(performanceDate),
		HoursUntilDeadline: p.HoursUntilDeadline(active, performanceDate, now),
	}
}
