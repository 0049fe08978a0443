package performances

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository interface for performance operations
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, performance *Performance) error
	GetByID(ctx context.Context, id uuid.UUID) (*Performance, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Performance, error)
	Save(ctx context.Context, performance *Performance) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters PerformanceFilters, now time.Time) ([]Performance, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new performance repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *repository) Create(ctx context.Context, performance *Performance) error {
	return r.db.WithContext(ctx).Create(performance).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Performance, error) {
	var performance Performance
	err := r.db.WithContext(ctx).First(&performance, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerformanceNotFound
		}
		return nil, err
	}
	return &performance, nil
}

// GetByIDForUpdate locks the performance row until the transaction ends
func (r *repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Performance, error) {
	var performance Performance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&performance, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerformanceNotFound
		}
		return nil, err
	}
	return &performance, nil
}

func (r *repository) Save(ctx context.Context, performance *Performance) error {
	return r.db.WithContext(ctx).Save(performance).Error
}

// Delete removes the performance with its bookings and seats
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM bookings WHERE performance_id = ?", id).Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM seats WHERE performance_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&Performance{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPerformanceNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, filters PerformanceFilters, now time.Time) ([]Performance, error) {
	var performances []Performance

	db := r.db.WithContext(ctx).Model(&Performance{})

	if filters.Title != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filters.Title)+"%")
	}
	if filters.VenueID != "" {
		db = db.Where("venue_id = ?", filters.VenueID)
	}
	if filters.Upcoming {
		db = db.Where("performance_date > ?", now)
	}

	err := db.Order("performance_date ASC").Find(&performances).Error
	return performances, err
}
