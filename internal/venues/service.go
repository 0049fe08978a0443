package venues

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	CreateVenue(ctx context.Context, venue *Venue) error
	GetVenue(ctx context.Context, id string) (*Venue, error)
	GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	ListVenues(ctx context.Context, filters VenueFilters) ([]Venue, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateVenue(ctx context.Context, venue *Venue) error {
	if err := venue.Validate(); err != nil {
		return err
	}
	if _, err := s.repo.GetByName(ctx, venue.Name); err == nil {
		return ErrDuplicateVenueName.WithDetail(fmt.Sprintf("venue %q already exists", venue.Name))
	}
	return s.repo.Create(ctx, venue)
}

func (s *service) GetVenue(ctx context.Context, id string) (*Venue, error) {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrVenueNotFound.WithDetail("invalid venue ID format")
	}
	return s.repo.GetByID(ctx, venueID)
}

func (s *service) GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListVenues(ctx context.Context, filters VenueFilters) ([]Venue, error) {
	venues, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}
