package database

import (
	"fmt"

	"gorm.io/gorm"
)

// ConfirmedSeatIndex is the partial unique index that allows at most one
// confirmed booking per seat. Cancelled bookings stay as history.
const ConfirmedSeatIndex = "idx_bookings_confirmed_seat"

var constraintStatements = []struct {
	name string
	sql  string
}{
	{
		name: ConfirmedSeatIndex,
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS ` + ConfirmedSeatIndex + `
			ON bookings (seat_id) WHERE status = 'CONFIRMED'`,
	},
	{
		name: "idx_seat_layouts_venue_grid",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_seat_layouts_venue_grid
			ON seat_layouts (venue_id, row_number, column_number)
			WHERE row_number IS NOT NULL AND column_number IS NOT NULL`,
	},
	{
		name: "idx_seat_layouts_venue_label",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_seat_layouts_venue_label
			ON seat_layouts (venue_id, seat_label)`,
	},
	{
		name: "fk_seats_performance",
		sql: `DO $$ BEGIN
			ALTER TABLE seats ADD CONSTRAINT fk_seats_performance
				FOREIGN KEY (performance_id) REFERENCES performances (id) ON DELETE CASCADE;
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	},
	{
		name: "fk_bookings_seat",
		sql: `DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT fk_bookings_seat
				FOREIGN KEY (seat_id) REFERENCES seats (id);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	},
	{
		name: "fk_bookings_performance",
		sql: `DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT fk_bookings_performance
				FOREIGN KEY (performance_id) REFERENCES performances (id) ON DELETE CASCADE;
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	},
}

// MigrateConstraints adds the constraints that back the booking invariants.
// Every statement is idempotent.
func MigrateConstraints(db *gorm.DB) error {
	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt.sql).Error; err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.name, err)
		}
	}
	return nil
}
