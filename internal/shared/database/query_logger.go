package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stagebook/internal/shared/config"
	"stagebook/pkg/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// queryLogger sends gorm's query log through the application logger
type queryLogger struct {
	log           *logger.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newQueryLogger(log *logger.Logger, level gormlogger.LogLevel, slowThreshold time.Duration) *queryLogger {
	return &queryLogger{log: log, level: level, slowThreshold: slowThreshold}
}

// queryLogLevel logs every query in development and only slow or failed
// queries in production
func queryLogLevel(cfg *config.Config) gormlogger.LogLevel {
	switch {
	case cfg.IsDevelopment():
		return gormlogger.Info
	case cfg.IsProduction():
		return gormlogger.Warn
	default:
		return gormlogger.Silent
	}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		query, _ := fc()
		l.log.LogDBQuery(ctx, query, elapsed, err)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		query, _ := fc()
		l.log.LogSlowQuery(ctx, query, elapsed)
	case l.level >= gormlogger.Info:
		query, _ := fc()
		l.log.LogDBQuery(ctx, query, elapsed, nil)
	}
}
