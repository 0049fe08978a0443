package layouts

import (
	"fmt"
)

// ValidationResult is the outcome of a layout validation that did not fail
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	TotalSeats int      `json:"total_seats"`
	Warnings   []string `json:"warnings"`
}

type gridKey struct{ row, col int }
type pointKey struct{ x, y int }

// ValidateLayout checks a candidate layout before it replaces the current one.
// Positions outside the canvas or shared by two seats fail; a seat count above
// maxSeatsWarning only produces a warning.
func ValidateLayout(seats []SeatLayout, canvas CanvasInfo, mode EditMode, maxSeatsWarning int) (*ValidationResult, error) {
	if !mode.IsValid() {
		return nil, ErrInvalidEditMode
	}

	grid := make(map[gridKey]string, len(seats))
	points := make(map[pointKey]string, len(seats))
	labels := make(map[string]bool, len(seats))

	for i := range seats {
		seat := &seats[i]

		if seat.SeatLabel == "" || len(seat.SeatLabel) > 10 {
			return nil, ErrInvalidSeatLabel.WithDetail(fmt.Sprintf("seat %d: label must be 1 to 10 characters", i+1))
		}
		if labels[seat.SeatLabel] {
			return nil, ErrDuplicateSeatLabel.WithDetail(fmt.Sprintf("label %s is used more than once", seat.SeatLabel))
		}
		labels[seat.SeatLabel] = true

		if !seat.SeatType.IsValid() {
			return nil, ErrInvalidSeatType.WithDetail(fmt.Sprintf("seat %s: unknown seat type %q", seat.SeatLabel, seat.SeatType))
		}
		if seat.Price < 0 {
			return nil, ErrInvalidLayout.WithDetail(fmt.Sprintf("seat %s: price must not be negative", seat.SeatLabel))
		}

		switch mode {
		case EditModeGrid:
			if !seat.HasGridPosition() {
				return nil, ErrMissingPosition.WithDetail(fmt.Sprintf("seat %s: row and column are required in grid mode", seat.SeatLabel))
			}
		case EditModeFree:
			if !seat.HasFreePosition() {
				return nil, ErrMissingPosition.WithDetail(fmt.Sprintf("seat %s: x and y are required in free mode", seat.SeatLabel))
			}
		}

		if seat.HasGridPosition() {
			if *seat.RowNumber < 1 || *seat.ColumnNumber < 1 {
				return nil, ErrInvalidLayout.WithDetail(fmt.Sprintf("seat %s: row and column start at 1", seat.SeatLabel))
			}
			key := gridKey{*seat.RowNumber, *seat.ColumnNumber}
			if other, exists := grid[key]; exists {
				return nil, ErrDuplicateGridPosition.WithDetail(
					fmt.Sprintf("seats %s and %s share row %d column %d", other, seat.SeatLabel, key.row, key.col))
			}
			grid[key] = seat.SeatLabel
		}

		if seat.HasFreePosition() {
			x, y := *seat.XPosition, *seat.YPosition
			if x < 0 || y < 0 || x >= canvas.Width || y >= canvas.Height {
				return nil, ErrSeatOutOfCanvas.WithDetail(
					fmt.Sprintf("seat %s at (%d,%d) is outside the %dx%d canvas", seat.SeatLabel, x, y, canvas.Width, canvas.Height))
			}
			key := pointKey{x, y}
			if other, exists := points[key]; exists {
				return nil, ErrOverlappingSeats.WithDetail(
					fmt.Sprintf("seats %s and %s are both placed at (%d,%d)", other, seat.SeatLabel, x, y))
			}
			points[key] = seat.SeatLabel
		}
	}

	result := &ValidationResult{Valid: true, TotalSeats: len(seats), Warnings: []string{}}
	if maxSeatsWarning > 0 && len(seats) > maxSeatsWarning {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("layout has %d seats, more than the recommended %d", len(seats), maxSeatsWarning))
	}
	return result, nil
}
