package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's log output through zap. Trace pulls the request
// id out of the query context, so SQL lines correlate with the HTTP log of
// the request that issued them.
type GormLogger struct {
	log                       *zap.Logger
	logLevel                  gormlogger.LogLevel
	slowThreshold             time.Duration
	ignoreRecordNotFoundError bool
}

type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the elapsed time above which a query is logged
// as slow.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(g *GormLogger) {
		g.slowThreshold = threshold
	}
}

// WithIgnoreRecordNotFoundError controls whether gorm.ErrRecordNotFound is
// logged as an error. Lookups that legitimately miss are routine here, so
// the default is to skip them.
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(g *GormLogger) {
		g.ignoreRecordNotFoundError = ignore
	}
}

func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	g := &GormLogger{
		log:                       log,
		logLevel:                  level,
		slowThreshold:             200 * time.Millisecond,
		ignoreRecordNotFoundError: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.logLevel = level
	return &clone
}

func (g *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.logLevel >= gormlogger.Info {
		g.log.Sugar().Infof(msg, args...)
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.logLevel >= gormlogger.Warn {
		g.log.Sugar().Warnf(msg, args...)
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.logLevel >= gormlogger.Error {
		g.log.Sugar().Errorf(msg, args...)
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.String("sql", sql),
		zap.Int64("rows", rows),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	switch {
	case err != nil && g.logLevel >= gormlogger.Error &&
		!(g.ignoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)):
		g.log.Error("SQL Error", append(fields, zap.Error(err))...)
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.logLevel >= gormlogger.Warn:
		g.log.Warn("Slow SQL", append(fields, zap.Duration("threshold", g.slowThreshold))...)
	case g.logLevel >= gormlogger.Info:
		g.log.Debug("SQL Query", fields...)
	}
}

// MapGormLogLevel translates the log level string from the config into
// gorm's level scale.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn", "warning":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
