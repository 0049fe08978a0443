package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stagebook/internal/shared/utils/pgerr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(ctx context.Context, booking *Booking) error
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	CountConfirmedByUser(ctx context.Context, userID string, performanceID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, performanceID uuid.UUID) (StatusCounts, error)

	GetDetail(ctx context.Context, id uuid.UUID) (*BookingDetail, error)
	ListByUser(ctx context.Context, userID string) ([]BookingDetail, error)
	ListByPerformance(ctx context.Context, performanceID uuid.UUID) ([]BookingDetail, error)
	ListCancellableByUser(ctx context.Context, userID string, performanceAfter time.Time) ([]BookingDetail, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// Create inserts the booking. The partial unique index on confirmed bookings
// per seat turns a lost race into ErrSeatAlreadyBooked.
func (r *repository) Create(ctx context.Context, booking *Booking) error {
	if !booking.Status.IsValid() {
		return ErrInvalidStatus.WithDetail(fmt.Sprintf("unknown booking status %q", booking.Status))
	}
	err := r.db.WithContext(ctx).Create(booking).Error
	if err != nil && pgerr.IsUniqueViolation(err) && pgerr.ConstraintName(err) != "idx_bookings_booking_ref" {
		return ErrSeatAlreadyBooked.Wrap(err)
	}
	return err
}

func (r *repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) Save(ctx context.Context, booking *Booking) error {
	if !booking.Status.IsValid() {
		return ErrInvalidStatus.WithDetail(fmt.Sprintf("unknown booking status %q", booking.Status))
	}
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *repository) CountConfirmedByUser(ctx context.Context, userID string, performanceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("user_id = ? AND performance_id = ? AND status = ?", userID, performanceID, StatusConfirmed).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByStatus(ctx context.Context, performanceID uuid.UUID) (StatusCounts, error) {
	var rows []struct {
		Status Status
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Select("status, COUNT(*) AS total").
		Where("performance_id = ?", performanceID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return StatusCounts{}, err
	}

	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case StatusConfirmed:
			counts.Confirmed = row.Total
		case StatusCancelled:
			counts.Cancelled = row.Total
		}
	}
	return counts, nil
}

func (r *repository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings").
		Select("bookings.*, seats.seat_number, performances.title AS performance_title, performances.performance_date").
		Joins("JOIN seats ON seats.id = bookings.seat_id").
		Joins("JOIN performances ON performances.id = bookings.performance_id")
}

func (r *repository) GetDetail(ctx context.Context, id uuid.UUID) (*BookingDetail, error) {
	var detail BookingDetail
	result := r.details(ctx).Where("bookings.id = ?", id).Limit(1).Scan(&detail)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrBookingNotFound
	}
	return &detail, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]BookingDetail, error) {
	var list []BookingDetail
	err := r.details(ctx).
		Where("bookings.user_id = ?", userID).
		Order("bookings.booking_date DESC").
		Scan(&list).Error
	return list, err
}

func (r *repository) ListByPerformance(ctx context.Context, performanceID uuid.UUID) ([]BookingDetail, error) {
	var list []BookingDetail
	err := r.details(ctx).
		Where("bookings.performance_id = ?", performanceID).
		Order("bookings.booking_date DESC").
		Scan(&list).Error
	return list, err
}

// ListCancellableByUser lists confirmed bookings of performances starting
// after performanceAfter
func (r *repository) ListCancellableByUser(ctx context.Context, userID string, performanceAfter time.Time) ([]BookingDetail, error) {
	var list []BookingDetail
	err := r.details(ctx).
		Where("bookings.user_id = ? AND bookings.status = ? AND performances.performance_date > ?",
			userID, StatusConfirmed, performanceAfter).
		Order("performances.performance_date ASC").
		Scan(&list).Error
	return list, err
}
