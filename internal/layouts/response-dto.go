package layouts

import "github.com/google/uuid"

type LayoutResponse struct {
	VenueID    uuid.UUID        `json:"venue_id"`
	Revision   int              `json:"revision"`
	EditMode   EditMode         `json:"edit_mode"`
	Canvas     CanvasInfo       `json:"canvas"`
	Stage      StageInfo        `json:"stage"`
	Seats      []SeatLayout     `json:"seats"`
	Sections   []SectionSummary `json:"sections"`
	Statistics VenueStatistics  `json:"statistics"`
}

type SaveLayoutResponse struct {
	Revision   Revision         `json:"revision"`
	Validation ValidationResult `json:"validation"`
}

type TemplateListResponse struct {
	Templates []Template `json:"templates"`
	Total     int        `json:"total"`
}
