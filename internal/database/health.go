package database

import (
	"context"
	"fmt"
	"time"

	"profile-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthChecker provides health checking capabilities for database connections
type HealthChecker struct {
	db     *gorm.DB
	driver string
	logger *logrus.Logger
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(db *gorm.DB, logger *logrus.Logger) *HealthChecker {
	if logger == nil {
		logger = logrus.New()
	}
	return &HealthChecker{
		db:     db,
		driver: db.Dialector.Name(),
		logger: logger,
	}
}

// CheckHealth pings the database and runs a trivial query
func (h *HealthChecker) CheckHealth(ctx context.Context) error {
	start := time.Now()
	defer func() {
		h.logger.WithField("duration", time.Since(start)).Debug("Health check completed")
	}()

	sqlDB, err := h.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var result int
	if err := h.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("test query returned unexpected result: %d", result)
	}

	return nil
}

// GetHealthStatus returns detailed health status
func (h *HealthChecker) GetHealthStatus(ctx context.Context) *repositories.HealthStatus {
	start := time.Now()
	status := &repositories.HealthStatus{
		Driver:    h.driver,
		CheckedAt: start,
		Details:   make(map[string]string),
	}

	err := h.CheckHealth(ctx)
	status.ResponseTime = time.Since(start)

	if err != nil {
		status.Healthy = false
		status.Message = err.Error()
		return status
	}

	status.Healthy = true
	status.Message = "Database is healthy"

	if sqlDB, err := h.db.DB(); err == nil {
		stats := sqlDB.Stats()
		status.Details["open_connections"] = fmt.Sprintf("%d", stats.OpenConnections)
		status.Details["in_use"] = fmt.Sprintf("%d", stats.InUse)
		status.Details["idle"] = fmt.Sprintf("%d", stats.Idle)
		status.Details["wait_count"] = fmt.Sprintf("%d", stats.WaitCount)
		status.Details["wait_duration"] = stats.WaitDuration.String()
	}

	return status
}
