package performances

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Performance is a dated showing at a venue. Its seats and bookings belong to it.
type Performance struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	VenueID         *uuid.UUID `gorm:"type:uuid;index" json:"venue_id,omitempty"`
	VenueName       string     `gorm:"size:255" json:"venue_name"`
	PerformanceDate time.Time  `gorm:"not null;index" json:"performance_date"`
	Price           int64      `gorm:"not null;check:price >= 0" json:"price"`
	TotalSeats      int        `gorm:"not null;check:total_seats >= 0" json:"total_seats"`
	CreatedBy       string     `gorm:"size:64" json:"created_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Performance) TableName() string {
	return "performances"
}

func (p *Performance) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsPast reports whether the performance has started
func (p *Performance) IsPast(now time.Time) bool {
	return !p.PerformanceDate.After(now)
}

// Availability is the booking state derived from seat counts. Every reader of
// booked/available/sold-out figures goes through ComputeAvailability.
type Availability struct {
	TotalSeats     int     `json:"total_seats"`
	BookedSeats    int     `json:"booked_seats"`
	AvailableSeats int     `json:"available_seats"`
	BookingRate    float64 `json:"booking_rate"`
	IsSoldOut      bool    `json:"is_sold_out"`
	IsPast         bool    `json:"is_past"`
	IsBookable     bool    `json:"is_bookable"`
}

func ComputeAvailability(p *Performance, booked int, now time.Time) Availability {
	a := Availability{
		TotalSeats:     p.TotalSeats,
		BookedSeats:    booked,
		AvailableSeats: p.TotalSeats - booked,
		IsPast:         p.IsPast(now),
	}
	if p.TotalSeats > 0 {
		a.BookingRate = float64(booked) / float64(p.TotalSeats) * 100
	}
	a.IsSoldOut = a.AvailableSeats <= 0
	a.IsBookable = !a.IsPast && !a.IsSoldOut
	return a
}

type PerformanceResponse struct {
	Performance
	Availability Availability `json:"availability"`
}

type PerformanceFilters struct {
	Title    string `form:"title"`
	VenueID  string `form:"venue_id" binding:"omitempty,uuid"`
	Upcoming bool   `form:"upcoming"`
}
