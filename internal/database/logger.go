package database

import (
	"context"
	"errors"
	"time"

	"profile-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's statement and driver logs through logrus
type GormLogger struct {
	logger             *logrus.Logger
	level              gormlogger.LogLevel
	queryLogging       bool
	slowQueryThreshold time.Duration
}

// NewGormLogger creates a gorm logger honoring the query settings
func NewGormLogger(logger *logrus.Logger, query repositories.QueryConfig) *GormLogger {
	if logger == nil {
		logger = logrus.New()
	}
	return &GormLogger{
		logger:             logger,
		level:              gormlogger.Warn,
		queryLogging:       query.EnableQueryLogging,
		slowQueryThreshold: query.SlowQueryThreshold,
	}
}

// LogMode returns a copy of the logger at the given level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info logs informational messages from gorm
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.WithContext(ctx).WithField("data", data).Info(msg)
	}
}

// Warn logs warnings from gorm
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.WithContext(ctx).WithField("data", data).Warn(msg)
	}
}

// Error logs errors from gorm
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.WithContext(ctx).WithField("data", data).Error(msg)
	}
}

// Trace logs each executed statement. Failures other than a missing record
// are logged at debug because the repository layer reports them; slow
// statements are logged at warn.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	slow := l.slowQueryThreshold > 0 && elapsed > l.slowQueryThreshold

	if err == nil && !slow && !l.queryLogging {
		return
	}

	sql, rows := fc()
	entry := l.logger.WithContext(ctx).WithFields(logrus.Fields{
		"duration": elapsed,
		"rows":     rows,
		"sql":      sql,
	})

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		entry.WithError(err).Debug("SQL execution failed")
	case slow:
		entry.WithField("threshold", l.slowQueryThreshold).Warn("Slow query detected")
	case l.queryLogging:
		entry.Debug("SQL executed")
	}
}
