package seats

import "stagebook/internal/shared/apperr"

var (
	ErrSeatNotFound        = apperr.New(apperr.KindNotFound, "SEAT_NOT_FOUND", "seat not found")
	ErrInvalidStatusFilter = apperr.New(apperr.KindValidation, "INVALID_STATUS_FILTER", "status must be all, available or booked")
)
