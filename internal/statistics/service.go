package statistics

import (
	"context"
	"fmt"

	"stagebook/internal/bookings"
	"stagebook/internal/layouts"
	"stagebook/internal/performances"

	"github.com/google/uuid"
)

type Service interface {
	SeatStatistics(ctx context.Context, performanceID string) (*SeatStatistics, error)
	BookingStatistics(ctx context.Context, performanceID string) (*BookingStatistics, error)
	VenueLayoutStatistics(ctx context.Context, venueID string) (*layouts.VenueStatistics, error)
}

type AvailabilityReader interface {
	GetAvailability(ctx context.Context, id uuid.UUID) (*performances.Performance, performances.Availability, error)
}

type SeatCounter interface {
	CountByPerformance(ctx context.Context, performanceID uuid.UUID) (int64, error)
}

type BookingCounter interface {
	CountByStatus(ctx context.Context, performanceID uuid.UUID) (bookings.StatusCounts, error)
}

type LayoutReader interface {
	GetVenueStatistics(ctx context.Context, venueID string) (*layouts.VenueStatistics, error)
}

type service struct {
	availability AvailabilityReader
	seats        SeatCounter
	bookings     BookingCounter
	layouts      LayoutReader
}

func NewService(availability AvailabilityReader, seats SeatCounter, bookings BookingCounter, layouts LayoutReader) Service {
	return &service{
		availability: availability,
		seats:        seats,
		bookings:     bookings,
		layouts:      layouts,
	}
}

func (s *service) SeatStatistics(ctx context.Context, performanceID string) (*SeatStatistics, error) {
	id, err := parsePerformanceID(performanceID)
	if err != nil {
		return nil, err
	}

	_, availability, err := s.availability.GetAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	materialized, err := s.seats.CountByPerformance(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count seats: %w", err)
	}

	return &SeatStatistics{
		PerformanceID:     id,
		TotalSeats:        availability.TotalSeats,
		MaterializedSeats: materialized,
		BookedSeats:       availability.BookedSeats,
		AvailableSeats:    availability.AvailableSeats,
		BookingRate:       availability.BookingRate,
		SoldOut:           availability.IsSoldOut,
	}, nil
}

func (s *service) BookingStatistics(ctx context.Context, performanceID string) (*BookingStatistics, error) {
	id, err := parsePerformanceID(performanceID)
	if err != nil {
		return nil, err
	}

	performance, availability, err := s.availability.GetAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.bookings.CountByStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	return &BookingStatistics{
		PerformanceID:     id,
		TotalBookings:     counts.Confirmed,
		CancelledBookings: counts.Cancelled,
		Revenue:           counts.Confirmed * performance.Price,
		ExpectedRevenue:   int64(performance.TotalSeats) * performance.Price,
		AvailableSeats:    availability.AvailableSeats,
		IsBookable:        availability.IsBookable,
	}, nil
}

func (s *service) VenueLayoutStatistics(ctx context.Context, venueID string) (*layouts.VenueStatistics, error) {
	return s.layouts.GetVenueStatistics(ctx, venueID)
}

func parsePerformanceID(id string) (uuid.UUID, error) {
	performanceID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, performances.ErrPerformanceNotFound.WithDetail("invalid performance ID format")
	}
	return performanceID, nil
}
