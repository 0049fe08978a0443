package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeSections_SkipsUnsectioned(t *testing.T) {
	a := gridSeat("A1", 1, 1)
	a.SectionID, a.SectionName, a.SectionColor, a.Price = intPtr(2), "Balcony", "#000000", 300
	b := gridSeat("A2", 1, 2)
	b.SectionID, b.SectionName, b.Price = intPtr(2), "ignored", 200
	c := gridSeat("A3", 1, 3)
	c.SectionID, c.SectionName, c.Price = intPtr(1), "Stalls", 100
	d := gridSeat("A4", 1, 4)

	sections := SummarizeSections([]SeatLayout{a, b, c, d})

	assert.Equal(t, []SectionSummary{
		{ID: 1, Name: "Stalls", SeatCount: 1, TotalRevenue: 100},
		{ID: 2, Name: "Balcony", Color: "#000000", SeatCount: 2, TotalRevenue: 500},
	}, sections)
}

func TestComputeStatistics(t *testing.T) {
	vip := gridSeat("A1", 1, 1)
	vip.SeatType, vip.Price = SeatTypeVIP, 100000
	regular := gridSeat("A2", 1, 2)
	regular.Price = 50000
	inactive := gridSeat("A3", 1, 3)
	inactive.IsActive = false
	blocked := gridSeat("A4", 1, 4)
	blocked.SeatType = SeatTypeBlocked
	aisle := gridSeat("A5", 1, 5)
	aisle.SeatType = SeatTypeAisle

	stats := ComputeStatistics([]SeatLayout{vip, regular, inactive, blocked, aisle})

	assert.Equal(t, VenueStatistics{
		TotalSeats:    5,
		ActiveSeats:   4,
		BookableSeats: 2,
		TotalRevenue:  150000,
		RegularSeats:  2,
		VIPSeats:      1,
		BlockedSeats:  1,
	}, stats)
}

func TestComputeStatistics_Empty(t *testing.T) {
	assert.Equal(t, VenueStatistics{}, ComputeStatistics(nil))
}
