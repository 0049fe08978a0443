package bookings

import "fmt"

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CanBeCancelled reports whether the booking may still move to CANCELLED
func (s Status) CanBeCancelled() bool {
	return s == StatusConfirmed
}

// Transition checks a status change. A booking is created CONFIRMED and may
// only move to CANCELLED, which is final.
func (s Status) Transition(next Status) error {
	if !s.IsValid() || !next.IsValid() {
		return ErrInvalidStatus.WithDetail(fmt.Sprintf("unknown booking status %q -> %q", s, next))
	}
	if s == StatusCancelled {
		return ErrBookingAlreadyCancelled
	}
	if next != StatusCancelled {
		return ErrInvalidStatus.WithDetail(fmt.Sprintf("booking cannot move from %s to %s", s, next))
	}
	return nil
}
