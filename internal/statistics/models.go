package statistics

import "github.com/google/uuid"

// SeatStatistics describes the seat inventory of one performance
type SeatStatistics struct {
	PerformanceID     uuid.UUID `json:"performance_id"`
	TotalSeats        int       `json:"total_seats"`
	MaterializedSeats int64     `json:"materialized_seats"`
	BookedSeats       int       `json:"booked_seats"`
	AvailableSeats    int       `json:"available_seats"`
	BookingRate       float64   `json:"booking_rate"`
	SoldOut           bool      `json:"sold_out"`
}

// BookingStatistics summarizes bookings and revenue of one performance.
// Amounts are in the smallest currency unit.
type BookingStatistics struct {
	PerformanceID     uuid.UUID `json:"performance_id"`
	TotalBookings     int64     `json:"total_bookings"`
	CancelledBookings int64     `json:"cancelled_bookings"`
	Revenue           int64     `json:"revenue"`
	ExpectedRevenue   int64     `json:"expected_revenue"`
	AvailableSeats    int       `json:"available_seats"`
	IsBookable        bool      `json:"is_bookable"`
}
