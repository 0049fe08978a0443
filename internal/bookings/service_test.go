package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"stagebook/internal/cancellation"
	"stagebook/internal/notifications"
	"stagebook/internal/performances"
	"stagebook/internal/seats"
	"stagebook/internal/shared/apperr"
	"stagebook/pkg/lock"
	"stagebook/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow         = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	performanceDate = time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)
)

type testEnv struct {
	store     *store
	publisher *recordingPublisher
	now       time.Time
	svc       Service
}

func newTestEnv(t *testing.T, locker lock.Locker) *testEnv {
	t.Helper()
	env := &testEnv{store: newStore(), publisher: &recordingPublisher{}, now: testNow}
	env.svc = NewService(fakeBookings{env.store}, fakeSeats{env.store}, env.store, Options{
		Policy:    cancellation.NewPolicy(24 * time.Hour),
		Locker:    locker,
		Publisher: env.publisher,
		Logger:    logger.Discard(),
		Now:       func() time.Time { return env.now },
	})
	return env
}

func (e *testEnv) book(userID string, performanceID, seatID uuid.UUID) (*BookingResponse, error) {
	return e.svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		PerformanceID: performanceID.String(),
		SeatID:        seatID.String(),
	})
}

func TestCreateBooking(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 5)

	resp, err := env.book("user-1", performance.ID, list[2].ID)

	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.Equal(t, "A3", resp.SeatNumber)
	assert.Equal(t, "Hamlet", resp.PerformanceTitle)
	assert.Regexp(t, `^BK-20250105-[A-Z]{6}$`, resp.BookingRef)
	assert.True(t, resp.Cancellation.CanCancel)
	assert.Equal(t, time.Date(2025, 1, 9, 20, 0, 0, 0, time.UTC), resp.Cancellation.Deadline)

	seat := env.store.seat(list[2].ID)
	assert.True(t, seat.IsBooked)
	assert.Equal(t, 1, seat.Version)
	assert.Equal(t, []notifications.EventType{notifications.EventBookingCreated}, env.publisher.types())
}

func TestCreateBooking_Preconditions(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 6)
	_, otherSeats := env.store.addPerformance(performanceDate, 1)
	past, pastSeats := env.store.addPerformance(testNow.Add(-time.Hour), 2)

	swapped, err := fakeSeats{env.store}.MarkBooked(context.Background(), pastSeats[0].ID, 0)
	require.NoError(t, err)
	require.True(t, swapped)

	_, err = env.book("user-1", uuid.New(), list[0].ID)
	assert.ErrorIs(t, err, performances.ErrPerformanceNotFound)

	_, err = env.book("user-1", performance.ID, uuid.New())
	assert.ErrorIs(t, err, seats.ErrSeatNotFound)

	_, err = env.book("user-1", performance.ID, otherSeats[0].ID)
	assert.ErrorIs(t, err, ErrSeatNotInPerformance)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))

	// an already booked seat of a past performance reports the booking first
	_, err = env.book("user-1", past.ID, pastSeats[0].ID)
	assert.ErrorIs(t, err, ErrSeatAlreadyBooked)

	_, err = env.book("user-1", past.ID, pastSeats[1].ID)
	assert.ErrorIs(t, err, ErrPerformanceStarted)
}

func TestCreateBooking_PastPerformance(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(testNow, 1)

	_, err := env.book("user-1", performance.ID, list[0].ID)

	assert.ErrorIs(t, err, ErrPerformanceStarted)
	assert.False(t, env.store.seat(list[0].ID).IsBooked)
}

func TestCreateBooking_SeatAlreadyBooked(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 1)

	_, err := env.book("user-1", performance.ID, list[0].ID)
	require.NoError(t, err)

	_, err = env.book("user-2", performance.ID, list[0].ID)

	assert.ErrorIs(t, err, ErrSeatAlreadyBooked)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateBooking_LimitPerUser(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 6)

	for i := 0; i < DefaultMaxPerUserPerPerformance; i++ {
		_, err := env.book("user-1", performance.ID, list[i].ID)
		require.NoError(t, err)
	}

	_, err := env.book("user-1", performance.ID, list[4].ID)
	assert.ErrorIs(t, err, ErrBookingLimitReached)
	assert.Equal(t, apperr.KindLimitExceeded, apperr.KindOf(err))
	assert.False(t, env.store.seat(list[4].ID).IsBooked)

	// other users are not affected
	_, err = env.book("user-2", performance.ID, list[4].ID)
	assert.NoError(t, err)
}

func TestCreateBooking_CancelledBookingsDoNotCount(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 6)

	var first *BookingResponse
	for i := 0; i < DefaultMaxPerUserPerPerformance; i++ {
		resp, err := env.book("user-1", performance.ID, list[i].ID)
		require.NoError(t, err)
		if first == nil {
			first = resp
		}
	}
	_, err := env.svc.CancelBooking(context.Background(), first.ID.String(), "user-1", CancelBookingRequest{})
	require.NoError(t, err)

	_, err = env.book("user-1", performance.ID, list[5].ID)
	assert.NoError(t, err)
}

func TestCreateBooking_ConcurrentSameSeat(t *testing.T) {
	for name, locker := range map[string]lock.Locker{
		"no lock":    nil,
		"local lock": lock.NewLocalLocker(lock.Options{Wait: 5 * time.Second}),
	} {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, locker)
			performance, list := env.store.addPerformance(performanceDate, 1)

			const workers = 50
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				successes int
				conflicts int
			)
			start := make(chan struct{})
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					<-start
					_, err := env.book(fmt.Sprintf("user-%d", i), performance.ID, list[0].ID)
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						successes++
					case apperr.KindOf(err) == apperr.KindConflict:
						conflicts++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}(i)
			}
			close(start)
			wg.Wait()

			assert.Equal(t, 1, successes)
			assert.Equal(t, workers-1, conflicts)
			assert.Equal(t, 1, env.store.confirmedForSeat(list[0].ID))
			assert.Equal(t, 1, env.store.seat(list[0].ID).Version)
		})
	}
}

func TestCreateBooking_ConcurrentLimit(t *testing.T) {
	env := newTestEnv(t, lock.NewLocalLocker(lock.Options{Wait: 5 * time.Second}))
	performance, list := env.store.addPerformance(performanceDate, 10)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := range list {
		wg.Add(1)
		go func(seatID uuid.UUID) {
			defer wg.Done()
			_, err := env.book("user-1", performance.ID, seatID)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrBookingLimitReached)
		}(list[i].ID)
	}
	wg.Wait()

	assert.Equal(t, DefaultMaxPerUserPerPerformance, successes)
}

type busyLocker struct{}

func (busyLocker) Acquire(ctx context.Context, key string) (lock.Lease, error) {
	return nil, lock.ErrNotAcquired
}

func TestCreateBooking_SeatLocked(t *testing.T) {
	env := newTestEnv(t, busyLocker{})
	performance, list := env.store.addPerformance(performanceDate, 1)

	_, err := env.book("user-1", performance.ID, list[0].ID)

	assert.ErrorIs(t, err, ErrSeatLocked)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.False(t, env.store.seat(list[0].ID).IsBooked)
}

func TestCreateBooking_PublishFailureIsLogged(t *testing.T) {
	env := newTestEnv(t, nil)
	env.publisher.err = errors.New("kafka: client has run out of available brokers")
	performance, list := env.store.addPerformance(performanceDate, 1)

	resp, err := env.book("user-1", performance.ID, list[0].ID)

	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.True(t, env.store.seat(list[0].ID).IsBooked)
}

func TestCancelBooking(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 1)
	booked, err := env.book("user-1", performance.ID, list[0].ID)
	require.NoError(t, err)

	env.now = time.Date(2025, 1, 9, 19, 59, 0, 0, time.UTC)
	resp, err := env.svc.CancelBooking(context.Background(), booked.ID.String(), "user-1", CancelBookingRequest{Reason: "sick"})

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)
	assert.Equal(t, "sick", resp.CancellationReason)
	require.NotNil(t, resp.CancelledDate)
	assert.Equal(t, env.now, *resp.CancelledDate)
	assert.False(t, resp.Cancellation.CanCancel)

	seat := env.store.seat(list[0].ID)
	assert.False(t, seat.IsBooked)
	assert.Equal(t, 2, seat.Version)
	assert.Equal(t, []notifications.EventType{notifications.EventBookingCreated, notifications.EventBookingCancelled}, env.publisher.types())

	// the seat can be booked again
	_, err = env.book("user-2", performance.ID, list[0].ID)
	assert.NoError(t, err)
}

func TestCancelBooking_Twice(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 1)
	booked, err := env.book("user-1", performance.ID, list[0].ID)
	require.NoError(t, err)

	_, err = env.svc.CancelBooking(context.Background(), booked.ID.String(), "user-1", CancelBookingRequest{})
	require.NoError(t, err)

	_, err = env.svc.CancelBooking(context.Background(), booked.ID.String(), "user-1", CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingAlreadyCancelled)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
}

func TestCancelBooking_NotOwner(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 1)
	booked, err := env.book("user-1", performance.ID, list[0].ID)
	require.NoError(t, err)

	_, err = env.svc.CancelBooking(context.Background(), booked.ID.String(), "user-2", CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrNotBookingOwner)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.True(t, env.store.seat(list[0].ID).IsBooked)
}

func TestCancelBooking_DeadlinePassed(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 1)
	booked, err := env.book("user-1", performance.ID, list[0].ID)
	require.NoError(t, err)

	env.now = time.Date(2025, 1, 9, 20, 1, 0, 0, time.UTC)
	_, err = env.svc.CancelBooking(context.Background(), booked.ID.String(), "user-1", CancelBookingRequest{})

	assert.ErrorIs(t, err, cancellation.ErrDeadlinePassed)
	assert.True(t, env.store.seat(list[0].ID).IsBooked)
}

func TestCancelBooking_Unknown(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.svc.CancelBooking(context.Background(), uuid.NewString(), "user-1", CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = env.svc.CancelBooking(context.Background(), "BK-1", "user-1", CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBooking_Access(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 1)
	booked, err := env.book("user-1", performance.ID, list[0].ID)
	require.NoError(t, err)

	got, err := env.svc.GetBooking(context.Background(), booked.ID.String(), "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.SeatNumber)

	_, err = env.svc.GetBooking(context.Background(), booked.ID.String(), "user-2", false)
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	_, err = env.svc.GetBooking(context.Background(), booked.ID.String(), "admin-1", true)
	assert.NoError(t, err)
}

func TestGetCancellableBookings(t *testing.T) {
	env := newTestEnv(t, nil)
	soon, soonSeats := env.store.addPerformance(testNow.Add(12*time.Hour), 1)
	later, laterSeats := env.store.addPerformance(performanceDate, 2)

	_, err := env.book("user-1", soon.ID, soonSeats[0].ID)
	require.NoError(t, err)
	_, err = env.book("user-1", later.ID, laterSeats[0].ID)
	require.NoError(t, err)
	cancelled, err := env.book("user-1", later.ID, laterSeats[1].ID)
	require.NoError(t, err)
	_, err = env.svc.CancelBooking(context.Background(), cancelled.ID.String(), "user-1", CancelBookingRequest{})
	require.NoError(t, err)

	list, err := env.svc.GetCancellableBookings(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, later.ID, list[0].PerformanceID)
	assert.True(t, list[0].Cancellation.CanCancel)

	mine, err := env.svc.GetMyBookings(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func TestGetBookingsByPerformance(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 2)
	_, err := env.book("user-1", performance.ID, list[0].ID)
	require.NoError(t, err)
	_, err = env.book("user-2", performance.ID, list[1].ID)
	require.NoError(t, err)

	got, err := env.svc.GetBookingsByPerformance(context.Background(), performance.ID.String())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = env.svc.GetBookingsByPerformance(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, performances.ErrPerformanceNotFound)

	counts, err := env.svc.CountByStatus(context.Background(), performance.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{Confirmed: 2}, counts)
}

func TestCancelledBookingSurvivesSeatCleanup(t *testing.T) {
	env := newTestEnv(t, nil)
	performance, list := env.store.addPerformance(performanceDate, 3)
	booked, err := env.book("user-1", performance.ID, list[0].ID)
	require.NoError(t, err)
	_, err = env.svc.CancelBooking(context.Background(), booked.ID.String(), "user-1", CancelBookingRequest{Reason: "moved"})
	require.NoError(t, err)

	// a resize drops unbooked seats before planning new ones
	deleted, err := fakeSeats{env.store}.DeleteUnbooked(context.Background(), performance.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	mine, err := env.svc.GetMyBookings(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, StatusCancelled, mine[0].Status)
	assert.Equal(t, "A1", mine[0].SeatNumber)

	byPerformance, err := env.svc.GetBookingsByPerformance(context.Background(), performance.ID.String())
	require.NoError(t, err)
	assert.Len(t, byPerformance, 1)

	detail, err := env.svc.GetBooking(context.Background(), booked.ID.String(), "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, "moved", detail.CancellationReason)

	counts, err := env.svc.CountByStatus(context.Background(), performance.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{Cancelled: 1}, counts)
}
