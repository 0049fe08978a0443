package performances

import "stagebook/internal/shared/apperr"

var (
	ErrPerformanceNotFound   = apperr.New(apperr.KindNotFound, "PERFORMANCE_NOT_FOUND", "performance not found")
	ErrCapacityBelowBooked   = apperr.New(apperr.KindInvalidState, "CAPACITY_BELOW_BOOKED", "total seats cannot be lower than the number of booked seats")
	ErrPerformanceHasBooking = apperr.New(apperr.KindInvalidState, "PERFORMANCE_HAS_BOOKINGS", "performance has booked seats")
	ErrInvalidPerformance    = apperr.New(apperr.KindValidation, "INVALID_PERFORMANCE", "invalid performance")
)
