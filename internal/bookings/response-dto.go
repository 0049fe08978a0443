package bookings

import "stagebook/internal/cancellation"

type BookingResponse struct {
	BookingDetail
	Cancellation cancellation.Info `json:"cancellation"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
