package database

import (
	"stagebook/internal/bookings"
	"stagebook/internal/layouts"
	"stagebook/internal/performances"
	"stagebook/internal/seats"
	"stagebook/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&venues.Venue{},
		&layouts.SeatLayout{},
		&layouts.LayoutSettings{},
		&performances.Performance{},
		&seats.Seat{},
		&bookings.Booking{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
