package layouts

import (
	"fmt"
)

var sectionColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FECA57",
	"#FF8A80", "#82B1FF", "#B39DDB", "#A5D6A7", "#FFCC80",
}

// SectionColor returns the palette color of a 1-based section id
func SectionColor(sectionID int) string {
	if sectionID < 1 {
		return sectionColors[0]
	}
	return sectionColors[(sectionID-1)%len(sectionColors)]
}

func SectionName(sectionID int) string {
	return fmt.Sprintf("Section %d", sectionID)
}

// TemplateConfig overrides the defaults of a template.
// A nil AisleColumns means a single aisle in the middle column; an empty slice means no aisle.
type TemplateConfig struct {
	Rows                     *int     `json:"rows" binding:"omitempty,min=1,max=50"`
	Cols                     *int     `json:"cols" binding:"omitempty,min=1,max=50"`
	AisleColumns             []int    `json:"aisle_columns" binding:"omitempty,dive,min=0"`
	IncludeVIPSection        bool     `json:"include_vip_section"`
	IncludePremiumSection    bool     `json:"include_premium_section"`
	IncludeWheelchairSection bool     `json:"include_wheelchair_section"`
	SeatPrefix               string   `json:"seat_prefix" binding:"max=4"`
	EditMode                 EditMode `json:"edit_mode" binding:"omitempty,oneof=grid free"`
}

func (cfg TemplateConfig) dimensions(tmpl Template) (rows, cols int) {
	rows, cols = tmpl.Rows, tmpl.Cols
	if cfg.Rows != nil && *cfg.Rows > 0 {
		rows = *cfg.Rows
	}
	if cfg.Cols != nil && *cfg.Cols > 0 {
		cols = *cfg.Cols
	}
	return rows, cols
}

func (cfg TemplateConfig) mode() EditMode {
	if cfg.EditMode == "" {
		return EditModeGrid
	}
	return cfg.EditMode
}

// GenerateTemplateSeats lays out the seats of a template. Rows and columns are
// 0-based while iterating; the persisted grid position is 1-based.
func GenerateTemplateSeats(tmpl Template, cfg TemplateConfig) ([]SeatLayout, error) {
	rows, cols := cfg.dimensions(tmpl)
	mode := cfg.mode()
	if !mode.IsValid() {
		return nil, ErrInvalidEditMode
	}

	aisles := map[int]bool{}
	if cfg.AisleColumns == nil {
		aisles[cols/2] = true
	} else {
		for _, c := range cfg.AisleColumns {
			aisles[c] = true
		}
	}

	seats := make([]SeatLayout, 0, rows*cols)
	for row := 0; row < rows; row++ {
		section := sectionForRow(row, rows)
		seatType := seatTypeForRow(row, rows, cfg)

		for col := 0; col < cols; col++ {
			if aisles[col] {
				continue
			}

			x, y := position(mode, row, col)
			rowNumber, columnNumber := row+1, col+1
			sectionID := section

			seats = append(seats, SeatLayout{
				RowNumber:    &rowNumber,
				ColumnNumber: &columnNumber,
				XPosition:    &x,
				YPosition:    &y,
				SeatLabel:    FormatLabel(cfg.SeatPrefix, rowNumber, columnNumber),
				SeatType:     seatType,
				IsActive:     true,
				SectionID:    &sectionID,
				SectionName:  SectionName(section),
				SectionColor: SectionColor(section),
				Price:        seatType.DefaultPrice(),
			})
		}
	}
	return seats, nil
}

// sectionForRow splits the house into front 30%, middle 40% and rear 30%
func sectionForRow(row, rows int) int {
	switch {
	case float64(row) < float64(rows)*0.3:
		return 1
	case float64(row) < float64(rows)*0.7:
		return 2
	default:
		return 3
	}
}

func seatTypeForRow(row, rows int, cfg TemplateConfig) SeatType {
	switch {
	case cfg.IncludeVIPSection && row < 2:
		return SeatTypeVIP
	case cfg.IncludePremiumSection && float64(row) < float64(rows)*0.3:
		return SeatTypePremium
	case cfg.IncludeWheelchairSection && row == rows-1:
		return SeatTypeWheelchair
	default:
		return SeatTypeRegular
	}
}

// position returns grid units in grid mode and pixels in free mode
func position(mode EditMode, row, col int) (int, int) {
	if mode == EditModeFree {
		return col*50 + 100, row*45 + 150
	}
	return col + 2, row + 4
}

// canvasFor sizes a canvas that holds every generated seat. The request
// limits on CanvasInfo apply to client layouts only, so large templates grow
// past them.
func canvasFor(mode EditMode, rows, cols int) CanvasInfo {
	canvas := DefaultCanvas()
	if mode != EditModeFree {
		return canvas
	}
	if w := (cols-1)*50 + 200; w > canvas.Width {
		canvas.Width = w
	}
	if h := (rows-1)*45 + 250; h > canvas.Height {
		canvas.Height = h
	}
	return canvas
}
