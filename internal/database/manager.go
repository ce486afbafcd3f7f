package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"profile-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Manager owns the process-wide database session
type Manager struct {
	mu          sync.RWMutex
	config      *repositories.Config
	logger      *logrus.Logger
	factory     *ConnectionFactory
	db          *gorm.DB
	health      *HealthChecker
	isConnected bool
}

// NewManager creates a new database manager
func NewManager(config *repositories.Config, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
	}

	return &Manager{
		config:  config,
		logger:  logger,
		factory: NewConnectionFactory(logger),
	}
}

// Connect opens the database, creates the schema when auto-migrate is on and
// runs an initial health check.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isConnected {
		return fmt.Errorf("database already connected")
	}

	m.logger.Info("Connecting to database...")

	db, err := m.factory.CreateConnection(ctx, m.config)
	if err != nil {
		return fmt.Errorf("failed to create database connection: %w", err)
	}

	if m.config.AutoMigrate {
		if err := EnsureSchema(ctx, db, m.logger); err != nil {
			closeDB(db)
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	health := NewHealthChecker(db, m.logger)
	if err := health.CheckHealth(ctx); err != nil {
		closeDB(db)
		return fmt.Errorf("initial health check failed: %w", err)
	}

	m.db = db
	m.health = health
	m.isConnected = true

	m.logger.Info("Database connection established successfully")
	return nil
}

// Disconnect closes the database connection
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isConnected {
		return nil
	}

	m.logger.Info("Disconnecting from database...")

	err := closeDB(m.db)
	m.db = nil
	m.health = nil
	m.isConnected = false

	if err != nil {
		m.logger.WithError(err).Error("Error during database disconnection")
		return fmt.Errorf("failed to disconnect from database: %w", err)
	}

	m.logger.Info("Database disconnected successfully")
	return nil
}

// GetDB returns the gorm session, or nil when not connected
func (m *Manager) GetDB() *gorm.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.isConnected {
		return nil
	}
	return m.db
}

// IsConnected returns true if the database is connected
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.isConnected
}

// CheckHealth performs a health check on the database connection
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	health := m.health
	m.mu.RUnlock()

	if health == nil {
		return fmt.Errorf("database not connected")
	}
	return health.CheckHealth(ctx)
}

// GetHealthStatus returns the current health status
func (m *Manager) GetHealthStatus(ctx context.Context) *repositories.HealthStatus {
	m.mu.RLock()
	health := m.health
	m.mu.RUnlock()

	if health == nil {
		return &repositories.HealthStatus{
			Healthy:   false,
			Driver:    m.config.Database.Driver,
			Message:   "Database not connected",
			CheckedAt: time.Now(),
		}
	}
	return health.GetHealthStatus(ctx)
}

// EnsureSchema creates the schema on the open connection
func (m *Manager) EnsureSchema(ctx context.Context) error {
	db := m.GetDB()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	return EnsureSchema(ctx, db, m.logger)
}

// Close closes the database manager
func (m *Manager) Close() error {
	return m.Disconnect()
}

func closeDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
