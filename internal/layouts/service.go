package layouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stagebook/internal/shared/constants"
	"stagebook/internal/venues"
	"stagebook/pkg/cache"
	"stagebook/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("stagebook/internal/layouts")

// VenueReader is the part of the venue service the layout engine needs
type VenueReader interface {
	GetVenueByID(ctx context.Context, id uuid.UUID) (*venues.Venue, error)
}

type Service interface {
	ListTemplates(ctx context.Context) []Template
	ApplyTemplate(ctx context.Context, venueID string, req ApplyTemplateRequest) (*Revision, error)
	SaveLayout(ctx context.Context, venueID string, req SaveLayoutRequest) (*SaveLayoutResponse, error)
	GetLayout(ctx context.Context, venueID string) (*LayoutResponse, error)
	ValidateLayout(ctx context.Context, req SaveLayoutRequest) (*ValidationResult, error)
	ClearLayout(ctx context.Context, venueID string) (*Revision, error)
	GetVenueStatistics(ctx context.Context, venueID string) (*VenueStatistics, error)
	BookableSeats(ctx context.Context, venueID uuid.UUID) ([]SeatLayout, error)
}

// Options carries the optional collaborators of the layout service
type Options struct {
	Cache           cache.Service
	CacheTTL        time.Duration
	MaxSeatsWarning int
	Logger          *logger.Logger
}

type service struct {
	repo      Repository
	venues    VenueReader
	catalogue *Catalogue
	cache     cache.Service
	cacheTTL  time.Duration
	maxSeats  int
	validate  *validator.Validate
	logger    *logger.Logger
}

func NewService(repo Repository, venueReader VenueReader, catalogue *Catalogue, opts Options) Service {
	if catalogue == nil {
		catalogue = DefaultCatalogue()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = constants.TTL_VENUE_LAYOUT
	}
	if opts.MaxSeatsWarning <= 0 {
		opts.MaxSeatsWarning = 1000
	}
	if opts.Logger == nil {
		opts.Logger = logger.GetDefault()
	}

	validate := validator.New()
	validate.SetTagName("binding")

	return &service{
		repo:      repo,
		venues:    venueReader,
		catalogue: catalogue,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		maxSeats:  opts.MaxSeatsWarning,
		validate:  validate,
		logger:    opts.Logger,
	}
}

func (s *service) ListTemplates(ctx context.Context) []Template {
	return s.catalogue.List()
}

func (s *service) ApplyTemplate(ctx context.Context, venueID string, req ApplyTemplateRequest) (*Revision, error) {
	ctx, span := tracer.Start(ctx, "layouts.ApplyTemplate", trace.WithAttributes(
		attribute.String("venue.id", venueID),
		attribute.String("layout.template", req.TemplateName),
	))
	defer span.End()

	id, err := s.requireVenue(ctx, venueID)
	if err != nil {
		return nil, recordError(span, err)
	}

	tmpl, ok := s.catalogue.Get(req.TemplateName)
	if !ok {
		return nil, recordError(span, ErrTemplateNotFound.WithDetail(fmt.Sprintf("template %q not found", req.TemplateName)))
	}

	var cfg TemplateConfig
	if req.Config != nil {
		cfg = *req.Config
		if err := s.validate.Struct(cfg); err != nil {
			return nil, recordError(span, ErrInvalidLayout.WithDetail(err.Error()))
		}
	}

	seats, err := GenerateTemplateSeats(tmpl, cfg)
	if err != nil {
		return nil, recordError(span, err)
	}

	mode := cfg.mode()
	rows, cols := cfg.dimensions(tmpl)
	canvas := canvasFor(mode, rows, cols)
	if _, err := ValidateLayout(seats, canvas, mode, s.maxSeats); err != nil {
		return nil, recordError(span, err)
	}

	settings := LayoutSettings{EditMode: mode, Canvas: canvas, Stage: DefaultStage(canvas.Width)}
	return s.replace(ctx, span, id, settings, seats)
}

func (s *service) SaveLayout(ctx context.Context, venueID string, req SaveLayoutRequest) (*SaveLayoutResponse, error) {
	ctx, span := tracer.Start(ctx, "layouts.SaveLayout", trace.WithAttributes(
		attribute.String("venue.id", venueID),
		attribute.Int("layout.seats", len(req.Seats)),
	))
	defer span.End()

	id, err := s.requireVenue(ctx, venueID)
	if err != nil {
		return nil, recordError(span, err)
	}

	seats, validation, err := s.check(req)
	if err != nil {
		return nil, recordError(span, err)
	}

	settings := LayoutSettings{EditMode: req.EditMode, Canvas: req.canvas(), Stage: req.stage()}
	rev, err := s.replace(ctx, span, id, settings, seats)
	if err != nil {
		return nil, err
	}
	return &SaveLayoutResponse{Revision: *rev, Validation: *validation}, nil
}

func (s *service) ValidateLayout(ctx context.Context, req SaveLayoutRequest) (*ValidationResult, error) {
	_, result, err := s.check(req)
	return result, err
}

func (s *service) ClearLayout(ctx context.Context, venueID string) (*Revision, error) {
	ctx, span := tracer.Start(ctx, "layouts.ClearLayout", trace.WithAttributes(attribute.String("venue.id", venueID)))
	defer span.End()

	id, err := s.requireVenue(ctx, venueID)
	if err != nil {
		return nil, recordError(span, err)
	}

	canvas := DefaultCanvas()
	settings := LayoutSettings{EditMode: EditModeGrid, Canvas: canvas, Stage: DefaultStage(canvas.Width)}
	return s.replace(ctx, span, id, settings, nil)
}

func (s *service) GetLayout(ctx context.Context, venueID string) (*LayoutResponse, error) {
	id, err := parseVenueID(venueID)
	if err != nil {
		return nil, err
	}

	cacheKey := constants.BuildVenueLayoutKey(id.String())
	if s.cache != nil {
		var cached LayoutResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WithError(err).Warn("layout cache read failed", "venue_id", venueID)
		}
	}

	venue, err := s.venues.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.ListByVenue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	settings, err := s.repo.GetSettings(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout settings: %w", err)
	}

	layout := &LayoutResponse{
		VenueID:    id,
		Revision:   venue.LayoutRevision,
		Seats:      seats,
		Sections:   SummarizeSections(seats),
		Statistics: ComputeStatistics(seats),
	}
	if layout.Seats == nil {
		layout.Seats = []SeatLayout{}
	}
	if settings != nil {
		layout.EditMode = settings.EditMode
		layout.Canvas = settings.Canvas
		layout.Stage = settings.Stage
	} else {
		layout.EditMode = inferEditMode(seats)
		layout.Canvas = DefaultCanvas()
		layout.Stage = DefaultStage(layout.Canvas.Width)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, layout, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("layout cache write failed", "venue_id", venueID)
		}
	}
	return layout, nil
}

func (s *service) GetVenueStatistics(ctx context.Context, venueID string) (*VenueStatistics, error) {
	layout, err := s.GetLayout(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return &layout.Statistics, nil
}

func (s *service) BookableSeats(ctx context.Context, venueID uuid.UUID) ([]SeatLayout, error) {
	seats, err := s.repo.ListBookableByVenue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookable layout: %w", err)
	}
	return seats, nil
}

// check validates the request structure and then the layout itself
func (s *service) check(req SaveLayoutRequest) ([]SeatLayout, *ValidationResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, nil, ErrInvalidLayout.WithDetail(err.Error())
	}
	seats := req.toSeatLayouts()
	result, err := ValidateLayout(seats, req.canvas(), req.EditMode, s.maxSeats)
	if err != nil {
		return nil, nil, err
	}
	return seats, result, nil
}

func (s *service) replace(ctx context.Context, span trace.Span, venueID uuid.UUID, settings LayoutSettings, seats []SeatLayout) (*Revision, error) {
	rev, err := s.repo.ReplaceVenueLayout(ctx, venueID, settings, seats)
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(
		attribute.Int("layout.revision", rev.Number),
		attribute.Int("layout.seats_relinked", rev.SeatsRelinked),
		attribute.Int("layout.seats_detached", rev.SeatsDetached),
	)

	s.invalidate(ctx, venueID)
	s.logger.LogLayoutRevision(ctx, venueID.String(), rev.Number, rev.SeatsCreated, rev.SeatsRelinked, rev.SeatsDetached)
	return rev, nil
}

func (s *service) invalidate(ctx context.Context, venueID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, constants.BuildVenueLayoutKey(venueID.String())); err != nil {
		s.logger.WithError(err).Warn("layout cache invalidation failed", "venue_id", venueID.String())
	}
}

func (s *service) requireVenue(ctx context.Context, venueID string) (uuid.UUID, error) {
	id, err := parseVenueID(venueID)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.venues.GetVenueByID(ctx, id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func parseVenueID(venueID string) (uuid.UUID, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return uuid.Nil, ErrVenueNotFound.WithDetail("invalid venue ID format")
	}
	return id, nil
}

// inferEditMode is grid when every seat has grid coordinates
func inferEditMode(seats []SeatLayout) EditMode {
	for i := range seats {
		if !seats[i].HasGridPosition() {
			return EditModeFree
		}
	}
	return EditModeGrid
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
