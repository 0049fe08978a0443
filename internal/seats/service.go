package seats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	ListByPerformance(ctx context.Context, performanceID string, status string) ([]Seat, error)
	GetSeat(ctx context.Context, id string) (*Seat, error)
	IsSeatAvailable(ctx context.Context, id string) (*SeatAvailabilityResponse, error)
}

// PerformanceChecker confirms that a performance exists before its seats are listed
type PerformanceChecker interface {
	PerformanceExists(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	performances PerformanceChecker
}

func NewService(repo Repository, performances PerformanceChecker) Service {
	return &service{repo: repo, performances: performances}
}

func (s *service) ListByPerformance(ctx context.Context, performanceID string, status string) ([]Seat, error) {
	filter, err := ParseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(performanceID)
	if err != nil {
		return nil, ErrSeatNotFound.WithDetail("invalid performance ID format")
	}
	if s.performances != nil {
		if err := s.performances.PerformanceExists(ctx, id); err != nil {
			return nil, err
		}
	}

	seats, err := s.repo.ListByPerformance(ctx, id, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	if seats == nil {
		seats = []Seat{}
	}
	return seats, nil
}

func (s *service) GetSeat(ctx context.Context, id string) (*Seat, error) {
	seatID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSeatNotFound.WithDetail("invalid seat ID format")
	}
	return s.repo.GetByID(ctx, seatID)
}

func (s *service) IsSeatAvailable(ctx context.Context, id string) (*SeatAvailabilityResponse, error) {
	seat, err := s.GetSeat(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SeatAvailabilityResponse{SeatID: seat.ID, Available: seat.IsAvailable()}, nil
}
