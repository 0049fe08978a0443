package layouts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stagebook/internal/shared/utils/pgerr"
	"stagebook/internal/venues"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const relinkChunkSize = 500

// Repository interface for layout operations
type Repository interface {
	ListByVenue(ctx context.Context, venueID uuid.UUID) ([]SeatLayout, error)
	ListBookableByVenue(ctx context.Context, venueID uuid.UUID) ([]SeatLayout, error)
	GetSettings(ctx context.Context, venueID uuid.UUID) (*LayoutSettings, error)
	ReplaceVenueLayout(ctx context.Context, venueID uuid.UUID, settings LayoutSettings, seats []SeatLayout) (*Revision, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new layout repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]SeatLayout, error) {
	var seats []SeatLayout
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("row_number ASC NULLS LAST, column_number ASC NULLS LAST, seat_label ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) ListBookableByVenue(ctx context.Context, venueID uuid.UUID) ([]SeatLayout, error) {
	var seats []SeatLayout
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND is_active = ? AND seat_type IN ?", venueID, true, bookableTypes()).
		Order("row_number ASC NULLS LAST, column_number ASC NULLS LAST, seat_label ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) GetSettings(ctx context.Context, venueID uuid.UUID) (*LayoutSettings, error) {
	var settings LayoutSettings
	err := r.db.WithContext(ctx).First(&settings, "venue_id = ?", venueID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// ReplaceVenueLayout swaps the whole layout of a venue for seats in one transaction.
// Performance seats that pointed at a replaced row follow the new row with the same
// label; the others are detached, never deleted.
func (r *repository) ReplaceVenueLayout(ctx context.Context, venueID uuid.UUID, settings LayoutSettings, seats []SeatLayout) (*Revision, error) {
	var rev Revision

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue venues.Venue
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&venue, "id = ?", venueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("failed to lock venue: %w", err)
		}
		next := venue.LayoutRevision + 1

		var old []layoutRef
		if err := tx.Model(&SeatLayout{}).Select("id, seat_label").Where("venue_id = ?", venueID).Scan(&old).Error; err != nil {
			return fmt.Errorf("failed to load current layout: %w", err)
		}

		if err := tx.Where("venue_id = ?", venueID).Delete(&SeatLayout{}).Error; err != nil {
			return fmt.Errorf("failed to delete current layout: %w", err)
		}

		for i := range seats {
			seats[i].ID = uuid.New()
			seats[i].VenueID = venueID
			seats[i].Revision = next
		}
		if len(seats) > 0 {
			if err := tx.CreateInBatches(seats, relinkChunkSize).Error; err != nil {
				if pgerr.IsUniqueViolation(err) {
					return ErrDuplicateGridPosition.WithDetail("layout violates constraint " + pgerr.ConstraintName(err))
				}
				return fmt.Errorf("failed to insert layout: %w", err)
			}
		}

		relink, orphans := planRelink(old, seats)
		relinked, err := relinkSeats(tx, relink)
		if err != nil {
			return err
		}
		detached, err := detachSeats(tx, orphans)
		if err != nil {
			return err
		}

		settings.VenueID = venueID
		settings.Revision = next
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to save layout settings: %w", err)
		}

		if err := tx.Model(&venues.Venue{}).Where("id = ?", venueID).Update("layout_revision", next).Error; err != nil {
			return fmt.Errorf("failed to bump layout revision: %w", err)
		}

		rev = Revision{Number: next, SeatsCreated: len(seats), SeatsRelinked: relinked, SeatsDetached: detached}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// relinkSeats points performance seats at their replacement layout rows
func relinkSeats(tx *gorm.DB, relink map[uuid.UUID]uuid.UUID) (int, error) {
	if len(relink) == 0 {
		return 0, nil
	}

	pairs := make([][2]uuid.UUID, 0, len(relink))
	for oldID, newID := range relink {
		pairs = append(pairs, [2]uuid.UUID{oldID, newID})
	}

	total := 0
	for start := 0; start < len(pairs); start += relinkChunkSize {
		end := min(start+relinkChunkSize, len(pairs))
		chunk := pairs[start:end]

		values := make([]string, len(chunk))
		args := make([]interface{}, 0, len(chunk)*2)
		for i, p := range chunk {
			values[i] = "(?::uuid, ?::uuid)"
			args = append(args, p[0], p[1])
		}

		query := "UPDATE seats SET seat_layout_id = m.new_id, updated_at = NOW() FROM (VALUES " +
			strings.Join(values, ", ") +
			") AS m(old_id, new_id) WHERE seats.seat_layout_id = m.old_id"
		result := tx.Exec(query, args...)
		if result.Error != nil {
			return 0, fmt.Errorf("failed to relink performance seats: %w", result.Error)
		}
		total += int(result.RowsAffected)
	}
	return total, nil
}

// detachSeats clears the layout reference of seats whose layout row disappeared
func detachSeats(tx *gorm.DB, orphans []uuid.UUID) (int, error) {
	total := 0
	for start := 0; start < len(orphans); start += relinkChunkSize {
		end := min(start+relinkChunkSize, len(orphans))
		result := tx.Exec("UPDATE seats SET seat_layout_id = NULL, updated_at = NOW() WHERE seat_layout_id IN ?", orphans[start:end])
		if result.Error != nil {
			return 0, fmt.Errorf("failed to detach performance seats: %w", result.Error)
		}
		total += int(result.RowsAffected)
	}
	return total, nil
}

func bookableTypes() []SeatType {
	return []SeatType{SeatTypeRegular, SeatTypeVIP, SeatTypePremium, SeatTypeWheelchair}
}
