package layouts

import "sort"

type SectionSummary struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	SeatCount    int    `json:"seat_count"`
	TotalRevenue int64  `json:"total_revenue"`
}

type VenueStatistics struct {
	TotalSeats      int   `json:"total_seats"`
	ActiveSeats     int   `json:"active_seats"`
	BookableSeats   int   `json:"bookable_seats"`
	TotalRevenue    int64 `json:"total_revenue"`
	RegularSeats    int   `json:"regular_seats"`
	VIPSeats        int   `json:"vip_seats"`
	PremiumSeats    int   `json:"premium_seats"`
	WheelchairSeats int   `json:"wheelchair_seats"`
	BlockedSeats    int   `json:"blocked_seats"`
}

// SummarizeSections groups seats by section id. Name and color are taken
// from the first seat of each section; seats without a section are skipped.
func SummarizeSections(seats []SeatLayout) []SectionSummary {
	byID := map[int]*SectionSummary{}
	for i := range seats {
		seat := &seats[i]
		if seat.SectionID == nil {
			continue
		}
		summary, ok := byID[*seat.SectionID]
		if !ok {
			summary = &SectionSummary{ID: *seat.SectionID, Name: seat.SectionName, Color: seat.SectionColor}
			byID[*seat.SectionID] = summary
		}
		summary.SeatCount++
		summary.TotalRevenue += seat.Price
	}

	sections := make([]SectionSummary, 0, len(byID))
	for _, s := range byID {
		sections = append(sections, *s)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].ID < sections[j].ID })
	return sections
}

// ComputeStatistics counts seats by type. Revenue is the sum of listed prices.
func ComputeStatistics(seats []SeatLayout) VenueStatistics {
	stats := VenueStatistics{TotalSeats: len(seats)}
	for i := range seats {
		seat := &seats[i]
		if seat.IsActive {
			stats.ActiveSeats++
		}
		if seat.IsBookable() {
			stats.BookableSeats++
		}
		stats.TotalRevenue += seat.Price

		switch seat.SeatType {
		case SeatTypeRegular:
			stats.RegularSeats++
		case SeatTypeVIP:
			stats.VIPSeats++
		case SeatTypePremium:
			stats.PremiumSeats++
		case SeatTypeWheelchair:
			stats.WheelchairSeats++
		case SeatTypeBlocked:
			stats.BlockedSeats++
		}
	}
	return stats
}
