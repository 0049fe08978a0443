package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"stagebook/internal/cancellation"
	"stagebook/internal/notifications"
	"stagebook/internal/performances"
	"stagebook/internal/seats"
	"stagebook/internal/shared/apperr"
	"stagebook/internal/shared/constants"
	"stagebook/pkg/lock"
	"stagebook/pkg/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const DefaultMaxPerUserPerPerformance = 4

var tracer = otel.Tracer("stagebook/internal/bookings")

type Service interface {
	CreateBooking(ctx context.Context, userID string, req CreateBookingRequest) (*BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, userID string, req CancelBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, bookingID, userID string, isAdmin bool) (*BookingResponse, error)
	GetMyBookings(ctx context.Context, userID string) ([]BookingResponse, error)
	GetCancellableBookings(ctx context.Context, userID string) ([]BookingResponse, error)
	GetBookingsByPerformance(ctx context.Context, performanceID string) ([]BookingResponse, error)
	CountByStatus(ctx context.Context, performanceID uuid.UUID) (StatusCounts, error)
}

// PerformanceReader loads the performance a booking is made for
type PerformanceReader interface {
	GetPerformanceByID(ctx context.Context, id uuid.UUID) (*performances.Performance, error)
}

type Options struct {
	// MaxPerUserPerPerformance caps confirmed bookings of one user for one performance
	MaxPerUserPerPerformance int
	Policy                   cancellation.Policy
	// Locker serializes competing requests before the transaction, nil disables it
	Locker    lock.Locker
	Publisher notifications.Publisher
	Logger    *logger.Logger
	Now       func() time.Time
}

type service struct {
	repo         Repository
	seats        seats.Repository
	performances PerformanceReader
	maxPerUser   int
	policy       cancellation.Policy
	locker       lock.Locker
	publisher    notifications.Publisher
	logger       *logger.Logger
	now          func() time.Time
}

func NewService(repo Repository, seatRepo seats.Repository, performanceReader PerformanceReader, opts Options) Service {
	if opts.MaxPerUserPerPerformance <= 0 {
		opts.MaxPerUserPerPerformance = DefaultMaxPerUserPerPerformance
	}
	if opts.Policy.Window <= 0 {
		opts.Policy = cancellation.NewPolicy(0)
	}
	if opts.Publisher == nil {
		opts.Publisher = notifications.NoopPublisher{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.GetDefault()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		repo:         repo,
		seats:        seatRepo,
		performances: performanceReader,
		maxPerUser:   opts.MaxPerUserPerPerformance,
		policy:       opts.Policy,
		locker:       opts.Locker,
		publisher:    opts.Publisher,
		logger:       opts.Logger,
		now:          opts.Now,
	}
}

// CreateBooking books one seat for the user. Preconditions are checked in a
// fixed order so that the first failing rule decides the error.
func (s *service) CreateBooking(ctx context.Context, userID string, req CreateBookingRequest) (*BookingResponse, error) {
	ctx, span := tracer.Start(ctx, "bookings.CreateBooking", trace.WithAttributes(
		attribute.String("performance.id", req.PerformanceID),
		attribute.String("seat.id", req.SeatID),
	))
	defer span.End()

	performanceID, err := uuid.Parse(req.PerformanceID)
	if err != nil {
		return nil, recordError(span, performances.ErrPerformanceNotFound.WithDetail("invalid performance ID format"))
	}
	seatID, err := uuid.Parse(req.SeatID)
	if err != nil {
		return nil, recordError(span, seats.ErrSeatNotFound.WithDetail("invalid seat ID format"))
	}

	performance, err := s.performances.GetPerformanceByID(ctx, performanceID)
	if err != nil {
		return nil, recordError(span, err)
	}
	seat, err := s.seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, recordError(span, err)
	}
	if seat.PerformanceID != performance.ID {
		return nil, recordError(span, ErrSeatNotInPerformance)
	}
	if seat.IsBooked {
		s.logger.WithUserID(userID).LogBookingConflict(ctx, req.PerformanceID, req.SeatID, ErrSeatAlreadyBooked.Code)
		return nil, recordError(span, ErrSeatAlreadyBooked)
	}
	now := s.now()
	if performance.IsPast(now) {
		return nil, recordError(span, ErrPerformanceStarted)
	}
	if err := s.checkLimit(ctx, s.repo, userID, performanceID); err != nil {
		return nil, recordError(span, err)
	}

	release, err := s.acquire(ctx, userID, req.PerformanceID, req.SeatID)
	if err != nil {
		return nil, recordError(span, err)
	}
	defer release()

	ref, err := generateBookingReference(now)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("failed to generate booking reference: %w", err))
	}
	booking := &Booking{
		ID:            uuid.New(),
		BookingRef:    ref,
		UserID:        userID,
		PerformanceID: performanceID,
		SeatID:        seatID,
		Status:        StatusConfirmed,
		BookingDate:   now,
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		seatRepo := s.seats.WithTx(tx)

		locked, err := seatRepo.GetByIDForUpdate(ctx, seatID)
		if err != nil {
			return err
		}
		if locked.IsBooked {
			return ErrSeatAlreadyBooked
		}
		if err := s.checkLimit(ctx, repo, userID, performanceID); err != nil {
			return err
		}

		swapped, err := seatRepo.MarkBooked(ctx, seatID, locked.Version)
		if err != nil {
			return fmt.Errorf("failed to mark seat as booked: %w", err)
		}
		if !swapped {
			return ErrSeatAlreadyBooked
		}

		return repo.Create(ctx, booking)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			s.logger.WithUserID(userID).LogBookingConflict(ctx, req.PerformanceID, req.SeatID, ErrSeatAlreadyBooked.Code)
		}
		return nil, recordError(span, err)
	}

	span.SetAttributes(attribute.String("booking.id", booking.ID.String()))
	s.logger.WithUserID(userID).LogBookingCreated(ctx, booking.ID.String(), req.PerformanceID, req.SeatID)

	detail := BookingDetail{
		Booking:          *booking,
		SeatNumber:       seat.SeatNumber,
		PerformanceTitle: performance.Title,
		PerformanceDate:  performance.PerformanceDate,
	}
	s.publish(ctx, notifications.EventBookingCreated, &detail, now)

	resp := s.toResponse(detail, now)
	return &resp, nil
}

func (s *service) checkLimit(ctx context.Context, repo Repository, userID string, performanceID uuid.UUID) error {
	count, err := repo.CountConfirmedByUser(ctx, userID, performanceID)
	if err != nil {
		return fmt.Errorf("failed to count user bookings: %w", err)
	}
	if count >= int64(s.maxPerUser) {
		return ErrBookingLimitReached.WithDetail(
			fmt.Sprintf("a user may hold at most %d bookings for one performance", s.maxPerUser))
	}
	return nil
}

// acquire takes the user/performance lock, then the seat lock. The returned
// function releases both.
func (s *service) acquire(ctx context.Context, userID, performanceID, seatID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	keys := []string{
		constants.BuildUserPerformanceLockKey(userID, performanceID),
		constants.BuildSeatLockKey(seatID),
	}
	leases := make([]lock.Lease, 0, len(keys))
	release := func() {
		for i := len(leases) - 1; i >= 0; i-- {
			if err := leases[i].Release(context.Background()); err != nil {
				s.logger.ErrorWithContext(ctx, "Failed to release booking lock", err, nil)
			}
		}
	}

	for _, key := range keys {
		lease, err := s.locker.Acquire(ctx, key)
		if err != nil {
			release()
			if errors.Is(err, lock.ErrNotAcquired) {
				s.logger.WithUserID(userID).LogBookingConflict(ctx, performanceID, seatID, ErrSeatLocked.Code)
				return nil, ErrSeatLocked
			}
			return nil, fmt.Errorf("failed to acquire booking lock: %w", err)
		}
		leases = append(leases, lease)
	}
	return release, nil
}

func (s *service) CancelBooking(ctx context.Context, bookingID, userID string, req CancelBookingRequest) (*BookingResponse, error) {
	ctx, span := tracer.Start(ctx, "bookings.CancelBooking", trace.WithAttributes(attribute.String("booking.id", bookingID)))
	defer span.End()

	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, recordError(span, err)
	}

	now := s.now()
	var booking *Booking
	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		booking, err = repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking.UserID != userID {
			return ErrNotBookingOwner
		}
		if err := booking.Status.Transition(StatusCancelled); err != nil {
			return err
		}

		performance, err := s.performances.GetPerformanceByID(ctx, booking.PerformanceID)
		if err != nil {
			return err
		}
		if err := s.policy.Check(performance.PerformanceDate, now); err != nil {
			return err
		}

		booking.Status = StatusCancelled
		booking.CancelledDate = &now
		booking.CancellationReason = req.Reason
		if err := repo.Save(ctx, booking); err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		return s.seats.WithTx(tx).MarkAvailable(ctx, booking.SeatID)
	})
	if err != nil {
		return nil, recordError(span, err)
	}

	s.logger.WithUserID(userID).LogBookingCancelled(ctx, booking.ID.String(), booking.PerformanceID.String())

	detail, err := s.repo.GetDetail(ctx, booking.ID)
	if err != nil {
		return nil, recordError(span, err)
	}
	s.publish(ctx, notifications.EventBookingCancelled, detail, now)

	resp := s.toResponse(*detail, now)
	return &resp, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, userID string, isAdmin bool) (*BookingResponse, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}

	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && detail.UserID != userID {
		return nil, ErrNotBookingOwner
	}

	resp := s.toResponse(*detail, s.now())
	return &resp, nil
}

func (s *service) GetMyBookings(ctx context.Context, userID string) ([]BookingResponse, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return s.toResponses(list), nil
}

func (s *service) GetCancellableBookings(ctx context.Context, userID string) ([]BookingResponse, error) {
	now := s.now()
	list, err := s.repo.ListCancellableByUser(ctx, userID, now.Add(s.policy.Window))
	if err != nil {
		return nil, fmt.Errorf("failed to list cancellable bookings: %w", err)
	}
	return s.toResponses(list), nil
}

func (s *service) GetBookingsByPerformance(ctx context.Context, performanceID string) ([]BookingResponse, error) {
	id, err := uuid.Parse(performanceID)
	if err != nil {
		return nil, performances.ErrPerformanceNotFound.WithDetail("invalid performance ID format")
	}
	if _, err := s.performances.GetPerformanceByID(ctx, id); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByPerformance(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return s.toResponses(list), nil
}

func (s *service) CountByStatus(ctx context.Context, performanceID uuid.UUID) (StatusCounts, error) {
	return s.repo.CountByStatus(ctx, performanceID)
}

// publish sends the event after commit; a failed publish never undoes the booking
func (s *service) publish(ctx context.Context, eventType notifications.EventType, detail *BookingDetail, now time.Time) {
	event := notifications.NewBookingEvent(eventType, now)
	event.BookingID = detail.ID
	event.BookingRef = detail.BookingRef
	event.UserID = detail.UserID
	event.PerformanceID = detail.PerformanceID
	event.SeatID = detail.SeatID
	event.SeatNumber = detail.SeatNumber
	event.Reason = detail.CancellationReason

	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"booking_id": detail.ID.String(),
			"event_type": string(eventType),
			"user_id":    detail.UserID,
		}).ErrorWithContext(ctx, "Failed to publish booking event", err, nil)
	}
}

func (s *service) toResponse(detail BookingDetail, now time.Time) BookingResponse {
	return BookingResponse{
		BookingDetail: detail,
		Cancellation:  s.policy.Describe(detail.Status.CanBeCancelled(), detail.PerformanceDate, now),
	}
}

func (s *service) toResponses(list []BookingDetail) []BookingResponse {
	now := s.now()
	responses := make([]BookingResponse, len(list))
	for i := range list {
		responses[i] = s.toResponse(list[i], now)
	}
	return responses
}

// generateBookingReference builds references like BK-20250110-QWERTY
func generateBookingReference(now time.Time) (string, error) {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)

	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return "BK-" + now.Format("20060102") + "-" + string(randomPart), nil
}

func parseBookingID(id string) (uuid.UUID, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrBookingNotFound.WithDetail("invalid booking ID format")
	}
	return bookingID, nil
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
