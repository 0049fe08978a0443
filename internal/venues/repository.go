package venues

import (
	"context"
	"errors"
	"fmt"

	"stagebook/internal/shared/utils/pgerr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for venue operations
type Repository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetByName(ctx context.Context, name string) (*Venue, error)
	List(ctx context.Context, filters VenueFilters) ([]Venue, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new venue repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, venue *Venue) error {
	if err := r.db.WithContext(ctx).Create(venue).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrDuplicateVenueName.WithDetail(fmt.Sprintf("venue %q already exists", venue.Name))
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).First(&venue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).First(&venue, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *repository) List(ctx context.Context, filters VenueFilters) ([]Venue, error) {
	var venues []Venue

	query := r.db.WithContext(ctx).Model(&Venue{})
	if filters.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("name ILIKE ? OR location ILIKE ?", searchPattern, searchPattern)
	}

	if err := query.Order("name ASC").Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}
