package venues

import "stagebook/internal/shared/apperr"

var (
	ErrVenueNotFound      = apperr.New(apperr.KindNotFound, "VENUE_NOT_FOUND", "venue not found")
	ErrDuplicateVenueName = apperr.New(apperr.KindConflict, "DUPLICATE_VENUE_NAME", "a venue with this name already exists")
	ErrInvalidVenue       = apperr.New(apperr.KindValidation, "INVALID_VENUE", "invalid venue")
)
