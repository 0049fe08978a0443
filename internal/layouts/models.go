package layouts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeatType string

const (
	SeatTypeRegular    SeatType = "REGULAR"
	SeatTypeVIP        SeatType = "VIP"
	SeatTypePremium    SeatType = "PREMIUM"
	SeatTypeWheelchair SeatType = "WHEELCHAIR"
	SeatTypeBlocked    SeatType = "BLOCKED"
	SeatTypeAisle      SeatType = "AISLE"
	SeatTypeStage      SeatType = "STAGE"
)

// IsValid checks if the seat type is known
func (t SeatType) IsValid() bool {
	switch t {
	case SeatTypeRegular, SeatTypeVIP, SeatTypePremium, SeatTypeWheelchair,
		SeatTypeBlocked, SeatTypeAisle, SeatTypeStage:
		return true
	}
	return false
}

// IsBookable reports whether seats of this type may be sold
func (t SeatType) IsBookable() bool {
	switch t {
	case SeatTypeRegular, SeatTypeVIP, SeatTypePremium, SeatTypeWheelchair:
		return true
	}
	return false
}

// IsPhysical reports whether the type is an actual seat rather than structure
func (t SeatType) IsPhysical() bool {
	return t != SeatTypeAisle && t != SeatTypeStage && t != SeatTypeBlocked
}

// DefaultPrice is the listed price for a seat type in currency units
func (t SeatType) DefaultPrice() int64 {
	switch t {
	case SeatTypeVIP:
		return 100000
	case SeatTypePremium:
		return 75000
	case SeatTypeBlocked:
		return 0
	default:
		return 50000
	}
}

type EditMode string

const (
	EditModeGrid EditMode = "grid"
	EditModeFree EditMode = "free"
)

func (m EditMode) IsValid() bool {
	return m == EditModeGrid || m == EditModeFree
}

// SeatLayout is the abstract seat definition of a venue, independent of any performance.
// Grid (row, column) and free (x, y) coordinates are separate identities and both may be set.
type SeatLayout struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VenueID      uuid.UUID `gorm:"type:uuid;not null;index" json:"venue_id"`
	Revision     int       `gorm:"not null" json:"revision"`
	RowNumber    *int      `gorm:"column:row_number" json:"row,omitempty"`
	ColumnNumber *int      `gorm:"column:column_number" json:"column,omitempty"`
	XPosition    *int      `gorm:"column:x_position" json:"x,omitempty"`
	YPosition    *int      `gorm:"column:y_position" json:"y,omitempty"`
	SeatLabel    string    `gorm:"size:10;not null" json:"label"`
	SeatType     SeatType  `gorm:"type:varchar(20);not null" json:"type"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	SectionID    *int      `json:"section,omitempty"`
	SectionName  string    `gorm:"size:50" json:"section_name,omitempty"`
	SectionColor string    `gorm:"size:7" json:"section_color,omitempty"`
	Price        int64     `gorm:"not null" json:"price"`
	Rotation     int       `gorm:"not null" json:"rotation"`
	Description  string    `gorm:"size:255" json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the table name for SeatLayout
func (SeatLayout) TableName() string {
	return "seat_layouts"
}

func (l *SeatLayout) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// IsBookable reports whether the layout entry becomes a sellable seat
func (l *SeatLayout) IsBookable() bool {
	return l.IsActive && l.SeatType.IsBookable()
}

// HasGridPosition reports whether the entry is addressable by row and column
func (l *SeatLayout) HasGridPosition() bool {
	return l.RowNumber != nil && l.ColumnNumber != nil
}

// HasFreePosition reports whether the entry carries pixel coordinates
func (l *SeatLayout) HasFreePosition() bool {
	return l.XPosition != nil && l.YPosition != nil
}

// LayoutSettings stores the editor metadata of a venue layout
type LayoutSettings struct {
	VenueID   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"venue_id"`
	EditMode  EditMode   `gorm:"type:varchar(10);not null" json:"edit_mode"`
	Canvas    CanvasInfo `gorm:"serializer:json" json:"canvas"`
	Stage     StageInfo  `gorm:"serializer:json" json:"stage"`
	Revision  int        `gorm:"not null" json:"revision"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName sets the table name for LayoutSettings
func (LayoutSettings) TableName() string {
	return "layout_settings"
}

type CanvasInfo struct {
	Width    int `json:"width" binding:"min=400,max=2000"`
	Height   int `json:"height" binding:"min=300,max=1500"`
	GridSize int `json:"grid_size" binding:"min=20,max=80"`
}

type StageInfo struct {
	X        int `json:"x" binding:"min=0"`
	Y        int `json:"y" binding:"min=0"`
	Width    int `json:"width" binding:"min=50,max=500"`
	Height   int `json:"height" binding:"min=30,max=200"`
	Rotation int `json:"rotation"`
}

const (
	defaultCanvasWidth  = 800
	defaultCanvasHeight = 600
	defaultGridSize     = 40
)

func DefaultCanvas() CanvasInfo {
	return CanvasInfo{Width: defaultCanvasWidth, Height: defaultCanvasHeight, GridSize: defaultGridSize}
}

// DefaultStage centers a 200x60 stage near the top of the canvas
func DefaultStage(canvasWidth int) StageInfo {
	x := 200
	if canvasWidth > 0 {
		x = canvasWidth/2 - 100
	}
	return StageInfo{X: x, Y: 50, Width: 200, Height: 60}
}
