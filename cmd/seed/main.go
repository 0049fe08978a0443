package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"stagebook/internal/layouts"
	"stagebook/internal/performances"
	"stagebook/internal/seats"
	"stagebook/internal/shared/config"
	"stagebook/internal/shared/constants"
	"stagebook/internal/shared/database"
	"stagebook/internal/venues"
	"stagebook/pkg/cache"
	"stagebook/pkg/logger"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const seedAdmin = "seed-admin"

type Seeder struct {
	db           *database.DB
	venues       venues.Service
	layouts      layouts.Service
	performances performances.Service
	now          time.Time
}

func main() {
	fmt.Println("🌱 Starting Stagebook Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()
	appLogger := logger.GetDefault()

	db, err := database.InitDB(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	catalogue, err := layouts.LoadCatalogue(cfg.Layout.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load layout templates: %v", err)
	}

	var cacheService cache.Service
	if db.Redis != nil {
		cacheService = cache.NewService(db.Redis)
	}

	venueService := venues.NewService(venues.NewRepository(db.PostgreSQL))
	layoutService := layouts.NewService(layouts.NewRepository(db.PostgreSQL), venueService, catalogue, layouts.Options{
		Cache:    cacheService,
		CacheTTL: cfg.Layout.CacheTTL,
		Logger:   appLogger,
	})
	performanceService := performances.NewService(
		performances.NewRepository(db.PostgreSQL),
		seats.NewRepository(db.PostgreSQL),
		venueService,
		layoutService,
		performances.Options{DefaultSeatsPerRow: cfg.Layout.DefaultSeatsPerRow, Logger: appLogger},
	)

	seeder := &Seeder{
		db:           db,
		venues:       venueService,
		layouts:      layoutService,
		performances: performanceService,
		now:          time.Now().UTC(),
	}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(ctx); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	if cacheService != nil {
		deleted, err := cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_LAYOUTS_ALL)
		if err != nil {
			log.Printf("Warning: failed to clear layout cache: %v", err)
		} else {
			fmt.Printf("  🗑️ Cleared %d cached layouts\n", deleted)
		}
	}

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables, dependents first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"seats",
		"performances",
		"layout_settings",
		"seat_layouts",
		"venues",
	}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

type venueSeed struct {
	venue    venues.Venue
	template string
	config   *layouts.TemplateConfig
}

type performanceSeed struct {
	title       string
	description string
	venue       string
	daysAhead   int
	hour        int
	price       int64
	totalSeats  *int
}

func (s *Seeder) SeedAll(ctx context.Context) error {
	venueIDs, err := s.SeedVenues(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}
	if err := s.SeedPerformances(ctx, venueIDs); err != nil {
		return fmt.Errorf("failed to seed performances: %w", err)
	}
	return nil
}

// SeedVenues creates venues and lays out their seats from templates
func (s *Seeder) SeedVenues(ctx context.Context) (map[string]string, error) {
	fmt.Println("  🏛️ Seeding venues...")

	rows, cols := 8, 14
	data := []venueSeed{
		{
			venue:    venues.Venue{Name: "Globe Studio", Location: "Southbank", TotalSeats: 120, TotalRows: 10, SeatsPerRow: 12},
			template: "small_theater",
		},
		{
			venue:    venues.Venue{Name: "Royal Playhouse", Location: "West End", TotalSeats: 600, TotalRows: 25, SeatsPerRow: 24, Facilities: "bar,cloakroom,step-free access"},
			template: "large_theater",
		},
		{
			venue:    venues.Venue{Name: "Lyric Hall", Location: "Old Town", TotalSeats: 112, TotalRows: rows, SeatsPerRow: cols},
			template: "medium_theater",
			config: &layouts.TemplateConfig{
				Rows:                     &rows,
				Cols:                     &cols,
				AisleColumns:             []int{7},
				IncludeVIPSection:        true,
				IncludePremiumSection:    true,
				IncludeWheelchairSection: true,
			},
		},
		// no layout: performances here get a synthetic grid
		{
			venue: venues.Venue{Name: "Garage Stage", Location: "Docklands", TotalSeats: 60, TotalRows: 6, SeatsPerRow: 10},
		},
	}

	ids := make(map[string]string, len(data))
	for i := range data {
		venue := data[i].venue
		if err := s.venues.CreateVenue(ctx, &venue); err != nil {
			return nil, fmt.Errorf("failed to create venue %s: %w", venue.Name, err)
		}
		ids[venue.Name] = venue.ID.String()
		fmt.Printf("    ✅ Created venue: %s\n", venue.Name)

		if data[i].template == "" {
			continue
		}
		rev, err := s.layouts.ApplyTemplate(ctx, venue.ID.String(), layouts.ApplyTemplateRequest{
			TemplateName: data[i].template,
			Config:       data[i].config,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s to %s: %w", data[i].template, venue.Name, err)
		}
		fmt.Printf("    🪑 Applied %s: %d seats (revision %d)\n", data[i].template, rev.SeatsCreated, rev.Number)
	}
	return ids, nil
}

// SeedPerformances schedules performances at the seeded venues
func (s *Seeder) SeedPerformances(ctx context.Context, venueIDs map[string]string) error {
	fmt.Println("  🎭 Seeding performances...")

	reduced := 40
	data := []performanceSeed{
		{"Hamlet", "Shakespeare's tragedy in a modern staging", "Royal Playhouse", 7, 19, 75000, nil},
		{"Hamlet", "Shakespeare's tragedy in a modern staging", "Royal Playhouse", 8, 19, 75000, nil},
		{"The Seagull", "Chekhov's comedy in four acts", "Globe Studio", 3, 20, 45000, nil},
		{"Waiting for Godot", "Beckett's tragicomedy", "Lyric Hall", 14, 19, 55000, nil},
		{"Waiting for Godot (matinee)", "Reduced capacity matinee", "Lyric Hall", 15, 14, 35000, &reduced},
		{"Open Mic Night", "New writing showcase", "Garage Stage", 2, 21, 10000, nil},
		// tomorrow evening: the cancellation window closes tonight
		{"A Doll's House", "Ibsen's drama", "Globe Studio", 1, 19, 50000, nil},
	}

	for _, p := range data {
		day := s.now.AddDate(0, 0, p.daysAhead)
		date := time.Date(day.Year(), day.Month(), day.Day(), p.hour, 0, 0, 0, time.UTC)

		resp, err := s.performances.CreatePerformance(ctx, seedAdmin, performances.CreatePerformanceRequest{
			Title:           p.title,
			Description:     p.description,
			VenueID:         venueIDs[p.venue],
			PerformanceDate: date,
			Price:           p.price,
			TotalSeats:      p.totalSeats,
		})
		if err != nil {
			return fmt.Errorf("failed to create performance %s: %w", p.title, err)
		}
		fmt.Printf("    ✅ Created performance: %s at %s (%d seats)\n", resp.Title, p.venue, resp.TotalSeats)
	}
	return nil
}
