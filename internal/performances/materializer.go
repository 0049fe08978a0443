package performances

import (
	"stagebook/internal/layouts"
	"stagebook/internal/seats"

	"github.com/google/uuid"
)

const defaultSeatsPerRow = 10

// Seat sources reported when seats are materialized
const (
	SourceLayout    = "layout"
	SourceSynthetic = "synthetic"
	SourceMixed     = "mixed"
)

// SeatPlan is the set of seats to add to a performance
type SeatPlan struct {
	Seats     []seats.Seat
	FromGrid  int
	Synthetic int
}

// Source names where the planned seats come from
func (p SeatPlan) Source() string {
	switch {
	case p.Synthetic == 0:
		return SourceLayout
	case p.FromGrid == 0:
		return SourceSynthetic
	default:
		return SourceMixed
	}
}

// PlanSeats computes the seats that bring a performance from its existing seats
// up to target. Bookable layout rows not yet used come first, in layout order;
// the rest is a synthetic grid of seatsPerRow columns numbered from index 1,
// skipping every label already taken.
func PlanSeats(performanceID uuid.UUID, target int, layout []layouts.SeatLayout, existing []seats.Seat, seatsPerRow int) SeatPlan {
	if seatsPerRow <= 0 {
		seatsPerRow = defaultSeatsPerRow
	}

	missing := target - len(existing)
	if missing <= 0 {
		return SeatPlan{}
	}

	taken := make(map[string]bool, len(existing)+missing)
	usedRows := make(map[uuid.UUID]bool, len(existing))
	for i := range existing {
		taken[existing[i].SeatNumber] = true
		if existing[i].SeatLayoutID != nil {
			usedRows[*existing[i].SeatLayoutID] = true
		}
	}

	plan := SeatPlan{Seats: make([]seats.Seat, 0, missing)}

	for i := range layout {
		if len(plan.Seats) == missing {
			return plan
		}
		row := &layout[i]
		if !row.IsBookable() || usedRows[row.ID] || taken[row.SeatLabel] {
			continue
		}
		layoutID := row.ID
		plan.Seats = append(plan.Seats, seats.Seat{
			PerformanceID: performanceID,
			SeatNumber:    row.SeatLabel,
			RowNumber:     copyInt(row.RowNumber),
			ColumnNumber:  copyInt(row.ColumnNumber),
			SeatLayoutID:  &layoutID,
		})
		taken[row.SeatLabel] = true
		plan.FromGrid++
	}

	for index := 1; len(plan.Seats) < missing; index++ {
		row := (index-1)/seatsPerRow + 1
		column := (index-1)%seatsPerRow + 1
		label := layouts.FormatLabel("", row, column)
		if taken[label] {
			continue
		}
		plan.Seats = append(plan.Seats, seats.Seat{
			PerformanceID: performanceID,
			SeatNumber:    label,
			RowNumber:     &row,
			ColumnNumber:  &column,
		})
		taken[label] = true
		plan.Synthetic++
	}

	return plan
}

// BookableCount counts the layout rows that become seats
func BookableCount(layout []layouts.SeatLayout) int {
	n := 0
	for i := range layout {
		if layout[i].IsBookable() {
			n++
		}
	}
	return n
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
