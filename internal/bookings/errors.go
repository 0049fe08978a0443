package bookings

import "stagebook/internal/shared/apperr"

var (
	ErrBookingNotFound         = apperr.New(apperr.KindNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrSeatAlreadyBooked       = apperr.New(apperr.KindConflict, "SEAT_ALREADY_BOOKED", "seat is already booked")
	ErrSeatLocked              = apperr.New(apperr.KindConflict, "SEAT_LOCKED", "seat is being booked by another request")
	ErrSeatNotInPerformance    = apperr.New(apperr.KindInvalidState, "SEAT_NOT_IN_PERFORMANCE", "seat does not belong to this performance")
	ErrPerformanceStarted      = apperr.New(apperr.KindInvalidState, "PERFORMANCE_ALREADY_STARTED", "performance has already started")
	ErrBookingLimitReached     = apperr.New(apperr.KindLimitExceeded, "BOOKING_LIMIT_REACHED", "booking limit for this performance reached")
	ErrNotBookingOwner         = apperr.New(apperr.KindForbidden, "NOT_BOOKING_OWNER", "booking belongs to another user")
	ErrBookingAlreadyCancelled = apperr.New(apperr.KindInvalidState, "BOOKING_ALREADY_CANCELLED", "booking is already cancelled")
	ErrInvalidStatus           = apperr.New(apperr.KindInvalidState, "INVALID_BOOKING_STATUS", "invalid booking status")
)
