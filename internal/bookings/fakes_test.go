package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"stagebook/internal/notifications"
	"stagebook/internal/performances"
	"stagebook/internal/seats"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// store keeps seats and bookings in memory. Every method takes the mutex, so
// each call is atomic the way a single SQL statement is.
type store struct {
	mu       sync.Mutex
	seats    map[uuid.UUID]seats.Seat
	bookings map[uuid.UUID]Booking
	perfs    map[uuid.UUID]*performances.Performance
}

func newStore() *store {
	return &store{
		seats:    map[uuid.UUID]seats.Seat{},
		bookings: map[uuid.UUID]Booking{},
		perfs:    map[uuid.UUID]*performances.Performance{},
	}
}

func (s *store) addPerformance(date time.Time, seatCount int) (*performances.Performance, []seats.Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &performances.Performance{ID: uuid.New(), Title: "Hamlet", PerformanceDate: date, TotalSeats: seatCount, Price: 50000}
	s.perfs[p.ID] = p

	list := make([]seats.Seat, seatCount)
	for i := range list {
		list[i] = seats.Seat{ID: uuid.New(), PerformanceID: p.ID, SeatNumber: fmt.Sprintf("A%d", i+1)}
		s.seats[list[i].ID] = list[i]
	}
	return p, list
}

func (s *store) seat(id uuid.UUID) seats.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seats[id]
}

func (s *store) confirmedForSeat(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.SeatID == id && b.Status == StatusConfirmed {
			n++
		}
	}
	return n
}

// GetPerformanceByID makes the store a PerformanceReader
func (s *store) GetPerformanceByID(ctx context.Context, id uuid.UUID) (*performances.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.perfs[id]
	if !ok {
		return nil, performances.ErrPerformanceNotFound
	}
	copied := *p
	return &copied, nil
}

type fakeSeats struct{ *store }

func (f fakeSeats) WithTx(tx *gorm.DB) seats.Repository { return f }

func (f fakeSeats) CreateBatch(ctx context.Context, list []seats.Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, seat := range list {
		f.seats[seat.ID] = seat
	}
	return nil
}

func (f fakeSeats) GetByID(ctx context.Context, id uuid.UUID) (*seats.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seat, ok := f.seats[id]
	if !ok {
		return nil, seats.ErrSeatNotFound
	}
	return &seat, nil
}

func (f fakeSeats) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*seats.Seat, error) {
	return f.GetByID(ctx, id)
}

func (f fakeSeats) MarkBooked(ctx context.Context, id uuid.UUID, version int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seat, ok := f.seats[id]
	if !ok || seat.Version != version || seat.IsBooked {
		return false, nil
	}
	seat.IsBooked = true
	seat.Version++
	f.seats[id] = seat
	return true, nil
}

func (f fakeSeats) MarkAvailable(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	seat, ok := f.seats[id]
	if !ok {
		return seats.ErrSeatNotFound
	}
	seat.IsBooked = false
	seat.Version++
	f.seats[id] = seat
	return nil
}

func (f fakeSeats) ListByPerformance(ctx context.Context, performanceID uuid.UUID, filter seats.StatusFilter) ([]seats.Seat, error) {
	return nil, errors.New("not used")
}

func (f fakeSeats) CountByPerformance(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	return 0, errors.New("not used")
}

func (f fakeSeats) CountBooked(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	return 0, errors.New("not used")
}

func (f fakeSeats) CountBookedByPerformances(ctx context.Context, performanceIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return nil, errors.New("not used")
}

// DeleteUnbooked keeps seats that any booking points to, like the SQL version
func (f fakeSeats) DeleteUnbooked(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	referenced := map[uuid.UUID]bool{}
	for _, b := range f.bookings {
		referenced[b.SeatID] = true
	}
	var n int64
	for id, seat := range f.seats {
		if seat.PerformanceID == performanceID && !seat.IsBooked && !referenced[id] {
			delete(f.seats, id)
			n++
		}
	}
	return n, nil
}

type fakeBookings struct{ *store }

func (f fakeBookings) WithTx(tx *gorm.DB) Repository { return f }

func (f fakeBookings) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (f fakeBookings) Create(ctx context.Context, booking *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.SeatID == booking.SeatID && b.Status == StatusConfirmed {
			return ErrSeatAlreadyBooked
		}
	}
	f.bookings[booking.ID] = *booking
	return nil
}

func (f fakeBookings) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (f fakeBookings) Save(ctx context.Context, booking *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[booking.ID] = *booking
	return nil
}

func (f fakeBookings) CountConfirmedByUser(ctx context.Context, userID string, performanceID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.UserID == userID && b.PerformanceID == performanceID && b.Status == StatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (f fakeBookings) CountByStatus(ctx context.Context, performanceID uuid.UUID) (StatusCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var counts StatusCounts
	for _, b := range f.bookings {
		if b.PerformanceID != performanceID {
			continue
		}
		if b.Status == StatusConfirmed {
			counts.Confirmed++
		} else {
			counts.Cancelled++
		}
	}
	return counts, nil
}

func (f fakeBookings) detail(b Booking) BookingDetail {
	p := f.perfs[b.PerformanceID]
	return BookingDetail{
		Booking:          b,
		SeatNumber:       f.seats[b.SeatID].SeatNumber,
		PerformanceTitle: p.Title,
		PerformanceDate:  p.PerformanceDate,
	}
}

func (f fakeBookings) list(keep func(BookingDetail) bool) []BookingDetail {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []BookingDetail
	for _, b := range f.bookings {
		// the detail query joins seats, so a booking without its seat is lost
		if _, ok := f.seats[b.SeatID]; !ok {
			continue
		}
		if d := f.detail(b); keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out
}

func (f fakeBookings) GetDetail(ctx context.Context, id uuid.UUID) (*BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	d := f.detail(b)
	return &d, nil
}

func (f fakeBookings) ListByUser(ctx context.Context, userID string) ([]BookingDetail, error) {
	return f.list(func(d BookingDetail) bool { return d.UserID == userID }), nil
}

func (f fakeBookings) ListByPerformance(ctx context.Context, performanceID uuid.UUID) ([]BookingDetail, error) {
	return f.list(func(d BookingDetail) bool { return d.PerformanceID == performanceID }), nil
}

func (f fakeBookings) ListCancellableByUser(ctx context.Context, userID string, performanceAfter time.Time) ([]BookingDetail, error) {
	return f.list(func(d BookingDetail) bool {
		return d.UserID == userID && d.Status == StatusConfirmed && d.PerformanceDate.After(performanceAfter)
	}), nil
}

// recordingPublisher keeps published events in order
type recordingPublisher struct {
	mu     sync.Mutex
	events []*notifications.BookingEvent
	err    error
}

func (p *recordingPublisher) PublishBookingEvent(ctx context.Context, event *notifications.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []notifications.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notifications.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
