package performances

import "time"

type CreatePerformanceRequest struct {
	Title           string    `json:"title" binding:"required,min=1,max=255"`
	Description     string    `json:"description" binding:"max=2000"`
	VenueID         string    `json:"venue_id" binding:"omitempty,uuid"`
	VenueName       string    `json:"venue_name" binding:"max=255"`
	PerformanceDate time.Time `json:"performance_date" binding:"required"`
	Price           int64     `json:"price" binding:"min=0"`
	TotalSeats      *int      `json:"total_seats" binding:"omitempty,min=0,max=100000"`
}

type UpdatePerformanceRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description     *string    `json:"description" binding:"omitempty,max=2000"`
	PerformanceDate *time.Time `json:"performance_date"`
	Price           *int64     `json:"price" binding:"omitempty,min=0"`
	TotalSeats      *int       `json:"total_seats" binding:"omitempty,min=0,max=100000"`
}
