package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stagebook/internal/shared/config"
	"stagebook/pkg/cache"
	"stagebook/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds database connections. Redis is nil when disabled or unreachable.
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client
	log        *logger.Logger
}

// InitDB connects to PostgreSQL, runs migrations and connects to Redis when enabled.
// A failed Redis connection is logged and the service runs without it.
func InitDB(ctx context.Context, cfg *config.Config, log *logger.Logger) (*DB, error) {
	pg, err := initPostgreSQL(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	log.Info("PostgreSQL connected", "host", cfg.Database.Host, "database", cfg.Database.Name)

	if err := Migrate(pg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db := &DB{PostgreSQL: pg, log: log}

	if cfg.Redis.Enabled {
		rdb, err := cache.Connect(ctx, cache.NewConfig(cfg.Redis.Addr, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB))
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, continuing without cache and distributed locks")
		} else {
			db.Redis = rdb
			log.Info("Redis connected", "addr", cfg.Redis.Addr)
		}
	}

	return db, nil
}

func initPostgreSQL(ctx context.Context, cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: newQueryLogger(log, queryLogLevel(cfg), cfg.Database.SlowQueryThreshold),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes all database connections
func (db *DB) Close() error {
	var errs []error

	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close PostgreSQL: %w", err))
			}
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	db.log.Info("All database connections closed")
	return nil
}

// HealthCheck pings PostgreSQL and, when connected, Redis
func (db *DB) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{"postgres": "ok", "redis": "disabled"}

	if sqlDB, err := db.PostgreSQL.DB(); err != nil {
		status["postgres"] = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		status["postgres"] = err.Error()
	}

	if db.Redis != nil {
		status["redis"] = "ok"
		if err := db.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
		}
	}

	return status
}
