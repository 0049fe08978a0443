package bookings

type CreateBookingRequest struct {
	PerformanceID string `json:"performance_id" binding:"required,uuid"`
	SeatID        string `json:"seat_id" binding:"required,uuid"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
