package seats

import (
	"context"
	"testing"

	"stagebook/internal/shared/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) WithTx(tx *gorm.DB) Repository { return m }

func (m *mockRepository) CreateBatch(ctx context.Context, seats []Seat) error {
	return m.Called(ctx, seats).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	args := m.Called(ctx, id)
	seat, _ := args.Get(0).(*Seat)
	return seat, args.Error(1)
}

func (m *mockRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Seat, error) {
	args := m.Called(ctx, id)
	seat, _ := args.Get(0).(*Seat)
	return seat, args.Error(1)
}

func (m *mockRepository) MarkBooked(ctx context.Context, id uuid.UUID, version int) (bool, error) {
	args := m.Called(ctx, id, version)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) MarkAvailable(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) ListByPerformance(ctx context.Context, performanceID uuid.UUID, filter StatusFilter) ([]Seat, error) {
	args := m.Called(ctx, performanceID, filter)
	seats, _ := args.Get(0).([]Seat)
	return seats, args.Error(1)
}

func (m *mockRepository) CountByPerformance(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, performanceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) CountBooked(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, performanceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) CountBookedByPerformances(ctx context.Context, performanceIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, performanceIDs)
	counts, _ := args.Get(0).(map[uuid.UUID]int64)
	return counts, args.Error(1)
}

func (m *mockRepository) DeleteUnbooked(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, performanceID)
	return args.Get(0).(int64), args.Error(1)
}

type performanceSet map[uuid.UUID]bool

func (p performanceSet) PerformanceExists(ctx context.Context, id uuid.UUID) error {
	if !p[id] {
		return apperr.New(apperr.KindNotFound, "PERFORMANCE_NOT_FOUND", "performance not found")
	}
	return nil
}

func TestParseStatusFilter(t *testing.T) {
	for in, want := range map[string]StatusFilter{"": FilterAll, "all": FilterAll, "available": FilterAvailable, "booked": FilterBooked} {
		got, err := ParseStatusFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatusFilter("held")
	assert.ErrorIs(t, err, ErrInvalidStatusFilter)
}

func TestListByPerformance_PassesFilter(t *testing.T) {
	repo := &mockRepository{}
	performanceID := uuid.New()
	svc := NewService(repo, performanceSet{performanceID: true})

	booked := []Seat{{ID: uuid.New(), PerformanceID: performanceID, SeatNumber: "A1", IsBooked: true}}
	repo.On("ListByPerformance", mock.Anything, performanceID, FilterBooked).Return(booked, nil)

	seats, err := svc.ListByPerformance(context.Background(), performanceID.String(), "booked")

	require.NoError(t, err)
	assert.Equal(t, booked, seats)
}

func TestListByPerformance_EmptyIsNotNil(t *testing.T) {
	repo := &mockRepository{}
	performanceID := uuid.New()
	svc := NewService(repo, performanceSet{performanceID: true})

	repo.On("ListByPerformance", mock.Anything, performanceID, FilterAll).Return(nil, nil)

	seats, err := svc.ListByPerformance(context.Background(), performanceID.String(), "")

	require.NoError(t, err)
	assert.NotNil(t, seats)
	assert.Empty(t, seats)
}

func TestListByPerformance_UnknownPerformance(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, performanceSet{})

	_, err := svc.ListByPerformance(context.Background(), uuid.NewString(), "all")

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	repo.AssertNotCalled(t, "ListByPerformance", mock.Anything, mock.Anything, mock.Anything)
}

func TestListByPerformance_BadFilter(t *testing.T) {
	svc := NewService(&mockRepository{}, performanceSet{})

	_, err := svc.ListByPerformance(context.Background(), uuid.NewString(), "held")

	assert.ErrorIs(t, err, ErrInvalidStatusFilter)
}

func TestIsSeatAvailable(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, nil)

	free := &Seat{ID: uuid.New(), SeatNumber: "A1"}
	taken := &Seat{ID: uuid.New(), SeatNumber: "A2", IsBooked: true}
	repo.On("GetByID", mock.Anything, free.ID).Return(free, nil)
	repo.On("GetByID", mock.Anything, taken.ID).Return(taken, nil)

	got, err := svc.IsSeatAvailable(context.Background(), free.ID.String())
	require.NoError(t, err)
	assert.True(t, got.Available)

	got, err = svc.IsSeatAvailable(context.Background(), taken.ID.String())
	require.NoError(t, err)
	assert.False(t, got.Available)
}

func TestGetSeat_MalformedID(t *testing.T) {
	svc := NewService(&mockRepository{}, nil)

	_, err := svc.GetSeat(context.Background(), "seat-1")

	assert.ErrorIs(t, err, ErrSeatNotFound)
}
