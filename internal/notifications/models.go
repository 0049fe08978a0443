package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent is published after a booking transaction commits
type BookingEvent struct {
	ID            uuid.UUID `json:"id"`
	Type          EventType `json:"type"`
	BookingID     uuid.UUID `json:"booking_id"`
	BookingRef    string    `json:"booking_ref"`
	UserID        string    `json:"user_id"`
	PerformanceID uuid.UUID `json:"performance_id"`
	SeatID        uuid.UUID `json:"seat_id"`
	SeatNumber    string    `json:"seat_number"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewBookingEvent creates an event with a fresh id
func NewBookingEvent(eventType EventType, occurredAt time.Time) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: occurredAt,
	}
}

// PartitionKey keeps every event of one performance on the same partition
func (e *BookingEvent) PartitionKey() string {
	return e.PerformanceID.String()
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
