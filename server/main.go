package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stagebook/api/routes"
	"stagebook/internal/layouts"
	"stagebook/internal/notifications"
	"stagebook/internal/shared/config"
	"stagebook/internal/shared/database"
	"stagebook/internal/shared/middleware"
	"stagebook/pkg/logger"
	"stagebook/pkg/ratelimit"
	"stagebook/pkg/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	ctx := context.Background()

	tel, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: Version,
		Environment:    cfg.Tracing.Environment,
		CollectorAddr:  cfg.Tracing.CollectorAddr,
	})
	if err != nil {
		appLogger.Error("Failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.InitDB(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	catalogue, err := layouts.LoadCatalogue(cfg.Layout.TemplatesPath)
	if err != nil {
		appLogger.Error("Failed to load layout templates", slog.Any("error", err))
		os.Exit(1)
	}

	var publisher notifications.Publisher = notifications.NoopPublisher{}
	if cfg.Kafka.Enabled {
		producerConfig := notifications.DefaultKafkaProducerConfig()
		producerConfig.Brokers = cfg.Kafka.Brokers
		producerConfig.Topic = cfg.Kafka.BookingTopic
		producerConfig.RetryMax = cfg.Kafka.RetryMax
		producerConfig.Timeout = cfg.Kafka.Timeout

		producer, err := notifications.NewKafkaProducer(producerConfig, appLogger)
		if err != nil {
			appLogger.Error("Failed to create Kafka producer, booking events will not be published", slog.Any("error", err))
		} else {
			publisher = producer
			appLogger.Info("Kafka producer initialized", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.BookingTopic))
		}
	}
	defer publisher.Close()

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, cfg.RateLimit)
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	router := setupRouter(routes.Dependencies{
		Config:    cfg,
		DB:        db,
		Catalogue: catalogue,
		Publisher: publisher,
		Logger:    appLogger,
	}, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("build_time", BuildTime),
			slog.Bool("redis", db.Redis != nil),
			slog.Bool("tracing", tel.Enabled()),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to flush traces", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(deps routes.Dependencies, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := deps.Logger

	engine.Use(telemetry.TracingMiddleware(), middleware.RequestLogger(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "traceparent", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", telemetry.TraceIDHeader, middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter, appLogger))
	}

	routes.NewRouter(deps).SetupRoutes(engine)

	return engine
}
