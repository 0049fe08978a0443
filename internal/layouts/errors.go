package layouts

import "stagebook/internal/shared/apperr"

var (
	ErrTemplateNotFound      = apperr.New(apperr.KindNotFound, "TEMPLATE_NOT_FOUND", "layout template not found")
	ErrVenueNotFound         = apperr.New(apperr.KindNotFound, "VENUE_NOT_FOUND", "venue not found")
	ErrDuplicateGridPosition = apperr.New(apperr.KindConflict, "DUPLICATE_GRID_POSITION", "two seats share the same row and column")
	ErrOverlappingSeats      = apperr.New(apperr.KindValidation, "OVERLAPPING_SEATS", "two seats share the same position")
	ErrSeatOutOfCanvas       = apperr.New(apperr.KindValidation, "SEAT_OUT_OF_CANVAS", "seat position is outside the canvas")
	ErrMissingPosition       = apperr.New(apperr.KindValidation, "MISSING_SEAT_POSITION", "seat has no position for the edit mode")
	ErrDuplicateSeatLabel    = apperr.New(apperr.KindValidation, "DUPLICATE_SEAT_LABEL", "two seats share the same label")
	ErrInvalidSeatType       = apperr.New(apperr.KindValidation, "INVALID_SEAT_TYPE", "unknown seat type")
	ErrInvalidSeatLabel      = apperr.New(apperr.KindValidation, "INVALID_SEAT_LABEL", "invalid seat label")
	ErrInvalidEditMode       = apperr.New(apperr.KindValidation, "INVALID_EDIT_MODE", "edit mode must be grid or free")
	ErrInvalidLayout         = apperr.New(apperr.KindValidation, "INVALID_LAYOUT", "invalid layout request")
)
