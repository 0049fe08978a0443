package venues

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Venue describes a physical house. Its seat layout lives in the layouts package
// and LayoutRevision counts how many times that layout has been replaced.
type Venue struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Location       string    `gorm:"size:255" json:"location"`
	TotalSeats     int       `gorm:"not null" json:"total_seats"`
	TotalRows      int       `gorm:"not null" json:"total_rows"`
	SeatsPerRow    int       `gorm:"not null" json:"seats_per_row"`
	Facilities     string    `gorm:"type:text" json:"facilities,omitempty"`
	LayoutRevision int       `gorm:"not null" json:"layout_revision"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName sets the table name for Venue
func (Venue) TableName() string {
	return "venues"
}

func (v *Venue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return v.Validate()
}

// Validate checks that the declared grid can hold the declared capacity
func (v *Venue) Validate() error {
	if v.TotalSeats < 0 || v.TotalRows < 0 || v.SeatsPerRow < 0 {
		return ErrInvalidVenue.WithDetail("seat counts must not be negative")
	}
	if v.TotalRows*v.SeatsPerRow < v.TotalSeats {
		return ErrInvalidVenue.WithDetail(fmt.Sprintf(
			"%d rows of %d seats cannot hold %d seats", v.TotalRows, v.SeatsPerRow, v.TotalSeats))
	}
	return nil
}

type VenueFilters struct {
	Search string `form:"search"`
}
