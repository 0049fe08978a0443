package seats

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seat is a sellable seat of one performance. SeatLayoutID is a weak reference
// to the venue layout row it was materialized from; it is nil for synthetic
// seats and for seats whose layout row was removed by a layout revision.
type Seat struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PerformanceID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_performance_seat_number" json:"performance_id"`
	SeatNumber    string     `gorm:"size:10;not null;uniqueIndex:idx_performance_seat_number" json:"seat_number"`
	RowNumber     *int       `gorm:"column:row_number" json:"row,omitempty"`
	ColumnNumber  *int       `gorm:"column:column_number" json:"column,omitempty"`
	IsBooked      bool       `gorm:"not null;index" json:"is_booked"`
	Version       int        `gorm:"not null" json:"version"`
	SeatLayoutID  *uuid.UUID `gorm:"type:uuid;index" json:"seat_layout_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Seat) IsAvailable() bool {
	return !s.IsBooked
}

// StatusFilter selects seats by booking state
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterAvailable StatusFilter = "available"
	FilterBooked    StatusFilter = "booked"
)

// ParseStatusFilter maps a query value to a filter, empty meaning all
func ParseStatusFilter(value string) (StatusFilter, error) {
	switch StatusFilter(value) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterAvailable, FilterBooked:
		return StatusFilter(value), nil
	}
	return "", ErrInvalidStatusFilter
}

// SeatAvailabilityResponse answers a single-seat availability check
type SeatAvailabilityResponse struct {
	SeatID    uuid.UUID `json:"seat_id"`
	Available bool      `json:"available"`
}
