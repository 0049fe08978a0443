package seats

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const createBatchSize = 500

// Repository interface for seat operations. Every method runs on the handle it
// was built with, so WithTx scopes the repository to an open transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBatch(ctx context.Context, seats []Seat) error
	GetByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Seat, error)
	MarkBooked(ctx context.Context, id uuid.UUID, version int) (bool, error)
	MarkAvailable(ctx context.Context, id uuid.UUID) error
	ListByPerformance(ctx context.Context, performanceID uuid.UUID, filter StatusFilter) ([]Seat, error)
	CountByPerformance(ctx context.Context, performanceID uuid.UUID) (int64, error)
	CountBooked(ctx context.Context, performanceID uuid.UUID) (int64, error)
	CountBookedByPerformances(ctx context.Context, performanceIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	DeleteUnbooked(ctx context.Context, performanceID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new seat repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateBatch(ctx context.Context, seats []Seat) error {
	if len(seats) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(seats, createBatchSize).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).First(&seat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &seat, nil
}

// GetByIDForUpdate locks the seat row until the transaction ends
func (r *repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &seat, nil
}

// MarkBooked flips the seat to booked only if nobody changed it since version
// was read. It reports false when the compare-and-set lost.
func (r *repository) MarkBooked(ctx context.Context, id uuid.UUID, version int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&Seat{}).
		Where("id = ? AND version = ? AND is_booked = ?", id, version, false).
		Updates(map[string]interface{}{
			"is_booked":  true,
			"version":    gorm.Expr("version + 1"),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) MarkAvailable(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Seat{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_booked":  false,
			"version":    gorm.Expr("version + 1"),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSeatNotFound
	}
	return nil
}

func (r *repository) ListByPerformance(ctx context.Context, performanceID uuid.UUID, filter StatusFilter) ([]Seat, error) {
	var seats []Seat

	query := r.db.WithContext(ctx).Where("performance_id = ?", performanceID)
	switch filter {
	case FilterAvailable:
		query = query.Where("is_booked = ?", false)
	case FilterBooked:
		query = query.Where("is_booked = ?", true)
	}

	err := query.
		Order("row_number ASC NULLS LAST, column_number ASC NULLS LAST, seat_number ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) CountByPerformance(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Seat{}).Where("performance_id = ?", performanceID).Count(&count).Error
	return count, err
}

func (r *repository) CountBooked(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Seat{}).
		Where("performance_id = ? AND is_booked = ?", performanceID, true).
		Count(&count).Error
	return count, err
}

// CountBookedByPerformances counts booked seats of several performances in one query
func (r *repository) CountBookedByPerformances(ctx context.Context, performanceIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(performanceIDs))
	if len(performanceIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PerformanceID uuid.UUID
		Booked        int64
	}
	err := r.db.WithContext(ctx).Model(&Seat{}).
		Select("performance_id, COUNT(*) AS booked").
		Where("performance_id IN ? AND is_booked = ?", performanceIDs, true).
		Group("performance_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PerformanceID] = row.Booked
	}
	return counts, nil
}

// DeleteUnbooked removes every seat of the performance that is not booked.
// Seats still referenced by a booking, cancelled ones included, are kept.
func (r *repository) DeleteUnbooked(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("performance_id = ? AND is_booked = ?", performanceID, false).
		Where("NOT EXISTS (SELECT 1 FROM bookings b WHERE b.seat_id = seats.id)").
		Delete(&Seat{})
	return result.RowsAffected, result.Error
}
