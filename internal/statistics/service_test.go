package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"stagebook/internal/bookings"
	"stagebook/internal/layouts"
	"stagebook/internal/performances"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

// fakePerformance answers every reader interface for a single performance
type fakePerformance struct {
	performance  performances.Performance
	booked       int
	materialized int64
	counts       bookings.StatusCounts
	countErr     error
}

func (f *fakePerformance) GetAvailability(ctx context.Context, id uuid.UUID) (*performances.Performance, performances.Availability, error) {
	if id != f.performance.ID {
		return nil, performances.Availability{}, performances.ErrPerformanceNotFound
	}
	p := f.performance
	return &p, performances.ComputeAvailability(&p, f.booked, testNow), nil
}

func (f *fakePerformance) CountByPerformance(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	return f.materialized, nil
}

func (f *fakePerformance) CountByStatus(ctx context.Context, performanceID uuid.UUID) (bookings.StatusCounts, error) {
	return f.counts, f.countErr
}

type fakeLayouts map[string]*layouts.VenueStatistics

func (f fakeLayouts) GetVenueStatistics(ctx context.Context, venueID string) (*layouts.VenueStatistics, error) {
	stats, ok := f[venueID]
	if !ok {
		return nil, errors.New("venue not found")
	}
	return stats, nil
}

func newFake(total, booked int) *fakePerformance {
	return &fakePerformance{
		performance: performances.Performance{
			ID:              uuid.New(),
			Title:           "Hamlet",
			PerformanceDate: testNow.Add(48 * time.Hour),
			Price:           50000,
			TotalSeats:      total,
		},
		booked:       booked,
		materialized: int64(total),
		counts:       bookings.StatusCounts{Confirmed: int64(booked), Cancelled: 2},
	}
}

func newTestService(f *fakePerformance, l fakeLayouts) Service {
	return NewService(f, f, f, l)
}

func TestSeatStatistics(t *testing.T) {
	f := newFake(100, 25)
	f.materialized = 98
	svc := newTestService(f, nil)

	stats, err := svc.SeatStatistics(context.Background(), f.performance.ID.String())

	require.NoError(t, err)
	assert.Equal(t, &SeatStatistics{
		PerformanceID:     f.performance.ID,
		TotalSeats:        100,
		MaterializedSeats: 98,
		BookedSeats:       25,
		AvailableSeats:    75,
		BookingRate:       25,
		SoldOut:           false,
	}, stats)
}

func TestSeatStatistics_SoldOut(t *testing.T) {
	f := newFake(40, 40)
	svc := newTestService(f, nil)

	stats, err := svc.SeatStatistics(context.Background(), f.performance.ID.String())

	require.NoError(t, err)
	assert.True(t, stats.SoldOut)
	assert.Equal(t, 0, stats.AvailableSeats)
	assert.Equal(t, float64(100), stats.BookingRate)
}

func TestSeatStatistics_NoSeats(t *testing.T) {
	f := newFake(0, 0)
	svc := newTestService(f, nil)

	stats, err := svc.SeatStatistics(context.Background(), f.performance.ID.String())

	require.NoError(t, err)
	assert.Equal(t, float64(0), stats.BookingRate)
	assert.True(t, stats.SoldOut)
}

func TestSeatStatistics_UnknownPerformance(t *testing.T) {
	svc := newTestService(newFake(10, 0), nil)

	_, err := svc.SeatStatistics(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, performances.ErrPerformanceNotFound)

	_, err = svc.SeatStatistics(context.Background(), "hamlet")
	assert.ErrorIs(t, err, performances.ErrPerformanceNotFound)
}

func TestBookingStatistics(t *testing.T) {
	f := newFake(100, 30)
	svc := newTestService(f, nil)

	stats, err := svc.BookingStatistics(context.Background(), f.performance.ID.String())

	require.NoError(t, err)
	assert.Equal(t, &BookingStatistics{
		PerformanceID:     f.performance.ID,
		TotalBookings:     30,
		CancelledBookings: 2,
		Revenue:           30 * 50000,
		ExpectedRevenue:   100 * 50000,
		AvailableSeats:    70,
		IsBookable:        true,
	}, stats)
}

func TestBookingStatistics_PastPerformanceNotBookable(t *testing.T) {
	f := newFake(100, 10)
	f.performance.PerformanceDate = testNow.Add(-time.Hour)
	svc := newTestService(f, nil)

	stats, err := svc.BookingStatistics(context.Background(), f.performance.ID.String())

	require.NoError(t, err)
	assert.False(t, stats.IsBookable)
	assert.Equal(t, 90, stats.AvailableSeats)
}

func TestBookingStatistics_CountError(t *testing.T) {
	f := newFake(10, 0)
	f.countErr = errors.New("connection reset")
	svc := newTestService(f, nil)

	_, err := svc.BookingStatistics(context.Background(), f.performance.ID.String())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestVenueLayoutStatistics(t *testing.T) {
	venueID := uuid.NewString()
	want := &layouts.VenueStatistics{TotalSeats: 84, ActiveSeats: 80, BookableSeats: 78, VIPSeats: 12}
	svc := newTestService(newFake(10, 0), fakeLayouts{venueID: want})

	got, err := svc.VenueLayoutStatistics(context.Background(), venueID)

	require.NoError(t, err)
	assert.Same(t, want, got)
}
