package performances

import (
	"context"
	"fmt"
	"time"

	"stagebook/internal/layouts"
	"stagebook/internal/seats"
	"stagebook/internal/venues"
	"stagebook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreatePerformance(ctx context.Context, createdBy string, req CreatePerformanceRequest) (*PerformanceResponse, error)
	UpdatePerformance(ctx context.Context, id string, req UpdatePerformanceRequest) (*PerformanceResponse, error)
	DeletePerformance(ctx context.Context, id string) error
	GetPerformance(ctx context.Context, id string) (*PerformanceResponse, error)
	ListPerformances(ctx context.Context, filters PerformanceFilters) ([]PerformanceResponse, error)

	// Used by the seat, booking and statistics features
	PerformanceExists(ctx context.Context, id uuid.UUID) error
	GetPerformanceByID(ctx context.Context, id uuid.UUID) (*Performance, error)
	GetAvailability(ctx context.Context, id uuid.UUID) (*Performance, Availability, error)
}

// VenueReader resolves the venue a performance is held at
type VenueReader interface {
	GetVenueByID(ctx context.Context, id uuid.UUID) (*venues.Venue, error)
}

// LayoutSource lists the bookable layout rows of a venue
type LayoutSource interface {
	BookableSeats(ctx context.Context, venueID uuid.UUID) ([]layouts.SeatLayout, error)
}

type Options struct {
	DefaultSeatsPerRow int
	Logger             *logger.Logger
	Now                func() time.Time
}

type service struct {
	repo        Repository
	seats       seats.Repository
	venues      VenueReader
	layouts     LayoutSource
	seatsPerRow int
	logger      *logger.Logger
	now         func() time.Time
}

func NewService(repo Repository, seatRepo seats.Repository, venueReader VenueReader, layoutSource LayoutSource, opts Options) Service {
	if opts.DefaultSeatsPerRow <= 0 {
		opts.DefaultSeatsPerRow = defaultSeatsPerRow
	}
	if opts.Logger == nil {
		opts.Logger = logger.GetDefault()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		repo:        repo,
		seats:       seatRepo,
		venues:      venueReader,
		layouts:     layoutSource,
		seatsPerRow: opts.DefaultSeatsPerRow,
		logger:      opts.Logger,
		now:         opts.Now,
	}
}

func (s *service) CreatePerformance(ctx context.Context, createdBy string, req CreatePerformanceRequest) (*PerformanceResponse, error) {
	now := s.now()
	if !req.PerformanceDate.After(now) {
		return nil, ErrInvalidPerformance.WithDetail("performance date must be in the future")
	}

	performance := &Performance{
		ID:              uuid.New(),
		Title:           req.Title,
		Description:     req.Description,
		VenueName:       req.VenueName,
		PerformanceDate: req.PerformanceDate,
		Price:           req.Price,
		CreatedBy:       createdBy,
	}

	var (
		layout      []layouts.SeatLayout
		seatsPerRow = s.seatsPerRow
		totalSeats  int
	)
	if req.VenueID != "" {
		venueID, err := uuid.Parse(req.VenueID)
		if err != nil {
			return nil, venues.ErrVenueNotFound.WithDetail("invalid venue ID format")
		}
		venue, err := s.venues.GetVenueByID(ctx, venueID)
		if err != nil {
			return nil, err
		}
		performance.VenueID = &venue.ID
		if performance.VenueName == "" {
			performance.VenueName = venue.Name
		}
		if venue.SeatsPerRow > 0 {
			seatsPerRow = venue.SeatsPerRow
		}

		layout, err = s.layouts.BookableSeats(ctx, venue.ID)
		if err != nil {
			return nil, err
		}
		totalSeats = venue.TotalSeats
		if n := BookableCount(layout); n > 0 {
			totalSeats = n
		}
	} else if req.TotalSeats == nil {
		return nil, ErrInvalidPerformance.WithDetail("total_seats is required when no venue is given")
	}
	if req.TotalSeats != nil {
		totalSeats = *req.TotalSeats
	}
	performance.TotalSeats = totalSeats

	plan := PlanSeats(performance.ID, totalSeats, layout, nil, seatsPerRow)

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, performance); err != nil {
			return fmt.Errorf("failed to create performance: %w", err)
		}
		if err := s.seats.WithTx(tx).CreateBatch(ctx, plan.Seats); err != nil {
			return fmt.Errorf("failed to materialize seats: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogSeatsMaterialized(ctx, performance.ID.String(), plan.Source(), len(plan.Seats))

	return &PerformanceResponse{
		Performance:  *performance,
		Availability: ComputeAvailability(performance, 0, now),
	}, nil
}

func (s *service) UpdatePerformance(ctx context.Context, id string, req UpdatePerformanceRequest) (*PerformanceResponse, error) {
	performanceID, err := parsePerformanceID(id)
	if err != nil {
		return nil, err
	}
	if req.PerformanceDate != nil && !req.PerformanceDate.After(s.now()) {
		return nil, ErrInvalidPerformance.WithDetail("performance date must be in the future")
	}

	var (
		updated *Performance
		booked  int64
	)
	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		performance, err := repo.GetByIDForUpdate(ctx, performanceID)
		if err != nil {
			return err
		}

		if req.Title != nil {
			performance.Title = *req.Title
		}
		if req.Description != nil {
			performance.Description = *req.Description
		}
		if req.PerformanceDate != nil {
			performance.PerformanceDate = *req.PerformanceDate
		}
		if req.Price != nil {
			performance.Price = *req.Price
		}
		if req.TotalSeats != nil && *req.TotalSeats != performance.TotalSeats {
			plan, err := s.resizeSeats(ctx, tx, performance, *req.TotalSeats)
			if err != nil {
				return err
			}
			performance.TotalSeats = *req.TotalSeats
			s.logger.LogSeatsMaterialized(ctx, performance.ID.String(), plan.Source(), len(plan.Seats))
		}

		if err := repo.Save(ctx, performance); err != nil {
			return fmt.Errorf("failed to update performance: %w", err)
		}

		booked, err = s.seats.WithTx(tx).CountBooked(ctx, performance.ID)
		if err != nil {
			return fmt.Errorf("failed to count booked seats: %w", err)
		}
		updated = performance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PerformanceResponse{
		Performance:  *updated,
		Availability: ComputeAvailability(updated, int(booked), s.now()),
	}, nil
}

// resizeSeats brings the seats of a performance to newTotal without touching
// booked seats. Unbooked seats are removed and the difference is planned again.
func (s *service) resizeSeats(ctx context.Context, tx *gorm.DB, performance *Performance, newTotal int) (SeatPlan, error) {
	seatRepo := s.seats.WithTx(tx)

	booked, err := seatRepo.CountBooked(ctx, performance.ID)
	if err != nil {
		return SeatPlan{}, fmt.Errorf("failed to count booked seats: %w", err)
	}
	if int64(newTotal) < booked {
		return SeatPlan{}, ErrCapacityBelowBooked.WithDetail(
			fmt.Sprintf("%d seats are booked, total seats cannot be reduced to %d", booked, newTotal))
	}

	if _, err := seatRepo.DeleteUnbooked(ctx, performance.ID); err != nil {
		return SeatPlan{}, fmt.Errorf("failed to delete unbooked seats: %w", err)
	}

	remaining, err := seatRepo.ListByPerformance(ctx, performance.ID, seats.FilterAll)
	if err != nil {
		return SeatPlan{}, fmt.Errorf("failed to list remaining seats: %w", err)
	}
	// remaining holds booked seats, seats kept for booking history and any
	// booking committed between the count and the delete
	if len(remaining) > newTotal {
		return SeatPlan{}, ErrCapacityBelowBooked.WithDetail(
			fmt.Sprintf("%d seats are booked or referenced by bookings, total seats cannot be reduced to %d", len(remaining), newTotal))
	}

	layout, seatsPerRow, err := s.seatSource(ctx, performance)
	if err != nil {
		return SeatPlan{}, err
	}

	plan := PlanSeats(performance.ID, newTotal, layout, remaining, seatsPerRow)
	if err := seatRepo.CreateBatch(ctx, plan.Seats); err != nil {
		return SeatPlan{}, fmt.Errorf("failed to materialize seats: %w", err)
	}
	return plan, nil
}

func (s *service) seatSource(ctx context.Context, performance *Performance) ([]layouts.SeatLayout, int, error) {
	if performance.VenueID == nil {
		return nil, s.seatsPerRow, nil
	}

	venue, err := s.venues.GetVenueByID(ctx, *performance.VenueID)
	if err != nil {
		return nil, 0, err
	}
	seatsPerRow := s.seatsPerRow
	if venue.SeatsPerRow > 0 {
		seatsPerRow = venue.SeatsPerRow
	}

	layout, err := s.layouts.BookableSeats(ctx, venue.ID)
	if err != nil {
		return nil, 0, err
	}
	return layout, seatsPerRow, nil
}

func (s *service) DeletePerformance(ctx context.Context, id string) error {
	performanceID, err := parsePerformanceID(id)
	if err != nil {
		return err
	}

	return s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.GetByIDForUpdate(ctx, performanceID); err != nil {
			return err
		}

		booked, err := s.seats.WithTx(tx).CountBooked(ctx, performanceID)
		if err != nil {
			return fmt.Errorf("failed to count booked seats: %w", err)
		}
		if booked > 0 {
			return ErrPerformanceHasBooking.WithDetail(fmt.Sprintf("performance has %d booked seats", booked))
		}

		return repo.Delete(ctx, performanceID)
	})
}

func (s *service) GetPerformance(ctx context.Context, id string) (*PerformanceResponse, error) {
	performanceID, err := parsePerformanceID(id)
	if err != nil {
		return nil, err
	}

	performance, availability, err := s.GetAvailability(ctx, performanceID)
	if err != nil {
		return nil, err
	}
	return &PerformanceResponse{Performance: *performance, Availability: availability}, nil
}

func (s *service) ListPerformances(ctx context.Context, filters PerformanceFilters) ([]PerformanceResponse, error) {
	now := s.now()

	list, err := s.repo.List(ctx, filters, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list performances: %w", err)
	}

	ids := make([]uuid.UUID, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	booked, err := s.seats.CountBookedByPerformances(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count booked seats: %w", err)
	}

	responses := make([]PerformanceResponse, len(list))
	for i := range list {
		responses[i] = PerformanceResponse{
			Performance:  list[i],
			Availability: ComputeAvailability(&list[i], int(booked[list[i].ID]), now),
		}
	}
	return responses, nil
}

func (s *service) PerformanceExists(ctx context.Context, id uuid.UUID) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

func (s *service) GetPerformanceByID(ctx context.Context, id uuid.UUID) (*Performance, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAvailability(ctx context.Context, id uuid.UUID) (*Performance, Availability, error) {
	performance, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, Availability{}, err
	}

	booked, err := s.seats.CountBooked(ctx, id)
	if err != nil {
		return nil, Availability{}, fmt.Errorf("failed to count booked seats: %w", err)
	}
	return performance, ComputeAvailability(performance, int(booked), s.now()), nil
}

func parsePerformanceID(id string) (uuid.UUID, error) {
	performanceID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrPerformanceNotFound.WithDetail("invalid performance ID format")
	}
	return performanceID, nil
}
