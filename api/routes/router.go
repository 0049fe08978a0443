package routes

import (
	"net/http"
	"time"

	"stagebook/api"
	"stagebook/internal/bookings"
	"stagebook/internal/cancellation"
	"stagebook/internal/layouts"
	"stagebook/internal/notifications"
	"stagebook/internal/performances"
	"stagebook/internal/seats"
	"stagebook/internal/shared/config"
	"stagebook/internal/shared/database"
	"stagebook/internal/statistics"
	"stagebook/internal/venues"
	"stagebook/pkg/cache"
	"stagebook/pkg/lock"
	"stagebook/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the shared clients the routes are built on
type Dependencies struct {
	Config    *config.Config
	DB        *database.DB
	Catalogue *layouts.Catalogue
	Publisher notifications.Publisher
	Logger    *logger.Logger
}

// Router holds all route dependencies
type Router struct {
	deps Dependencies
}

func NewRouter(deps Dependencies) *Router {
	if deps.Publisher == nil {
		deps.Publisher = notifications.NoopPublisher{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.GetDefault()
	}
	return &Router{deps: deps}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	if r.deps.Config.SwaggerEnabled {
		r.setupDocsRoutes(engine)
	}

	cfg := r.deps.Config
	pg := r.deps.DB.PostgreSQL
	log := r.deps.Logger

	var cacheService cache.Service
	if r.deps.DB.Redis != nil {
		cacheService = cache.NewService(r.deps.DB.Redis)
	}

	venueRepo := venues.NewRepository(pg)
	venueService := venues.NewService(venueRepo)

	layoutService := layouts.NewService(layouts.NewRepository(pg), venueService, r.deps.Catalogue, layouts.Options{
		Cache:           cacheService,
		CacheTTL:        cfg.Layout.CacheTTL,
		MaxSeatsWarning: cfg.Layout.MaxSeatsWarning,
		Logger:          log,
	})

	seatRepo := seats.NewRepository(pg)
	performanceService := performances.NewService(performances.NewRepository(pg), seatRepo, venueService, layoutService, performances.Options{
		DefaultSeatsPerRow: cfg.Layout.DefaultSeatsPerRow,
		Logger:             log,
	})
	seatService := seats.NewService(seatRepo, performanceService)

	var locker lock.Locker
	if cfg.Booking.SeatLockEnabled {
		locker = lock.New(r.deps.DB.Redis, lock.Options{
			TTL:  cfg.Booking.SeatLockTTL,
			Wait: cfg.Booking.SeatLockWait,
		}, log)
	}
	bookingService := bookings.NewService(bookings.NewRepository(pg), seatRepo, performanceService, bookings.Options{
		MaxPerUserPerPerformance: cfg.Booking.MaxPerUserPerPerformance,
		Policy:                   cancellation.NewPolicy(cfg.Booking.CancellationWindow),
		Locker:                   locker,
		Publisher:                r.deps.Publisher,
		Logger:                   log,
	})

	statisticsService := statistics.NewService(performanceService, seatRepo, bookingService, layoutService)

	apiGroup := engine.Group(cfg.GetAPIBasePath())
	{
		venues.SetupVenueRoutes(apiGroup, venues.NewController(venueService))
		layouts.SetupLayoutRoutes(apiGroup, layouts.NewController(layoutService))
		performances.SetupPerformanceRoutes(apiGroup, performances.NewController(performanceService))
		seats.SetupSeatRoutes(apiGroup, seats.NewController(seatService))
		bookings.SetupBookingRoutes(apiGroup, bookings.NewController(bookingService))
		statistics.SetupStatisticsRoutes(apiGroup, statistics.NewController(statisticsService))
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	serviceName := r.deps.Config.ServiceName

	engine.GET("/health", func(c *gin.Context) {
		checks := r.deps.DB.HealthCheck(c.Request.Context())
		status, code := "healthy", http.StatusOK
		if checks["postgres"] != "ok" {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"checks":    checks,
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.deps.Config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.deps.Config.APIVersion,
			"redis":       r.deps.DB.Redis != nil,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupDocsRoutes(engine *gin.Engine) {
	engine.GET("/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", api.OpenAPISpec)
	})
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.yaml")))
}
