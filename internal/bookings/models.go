package bookings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is one user's claim on one seat of one performance. Cancelled
// bookings are kept for history; at most one CONFIRMED booking exists per seat.
type Booking struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookingRef         string     `gorm:"size:32;uniqueIndex;not null" json:"booking_ref"`
	UserID             string     `gorm:"size:64;not null;index:idx_bookings_user_performance" json:"user_id"`
	PerformanceID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_bookings_user_performance;index" json:"performance_id"`
	SeatID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"seat_id"`
	Status             Status     `gorm:"type:varchar(20);not null;check:status IN ('CONFIRMED', 'CANCELLED')" json:"status"`
	BookingDate        time.Time  `gorm:"not null" json:"booking_date"`
	CancelledDate      *time.Time `json:"cancelled_date,omitempty"`
	CancellationReason string     `gorm:"size:500" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BookingDetail is a booking joined with its seat label and performance
type BookingDetail struct {
	Booking
	SeatNumber       string    `json:"seat_number"`
	PerformanceTitle string    `json:"performance_title"`
	PerformanceDate  time.Time `json:"performance_date"`
}

// StatusCounts holds the number of bookings per status of a performance
type StatusCounts struct {
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
}
