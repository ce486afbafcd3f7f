package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"profile-api/internal/config"
	"profile-api/internal/database"
	"profile-api/internal/repositories/gormrepo"
	"profile-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *logrus.Logger
	ProfileService services.ProfileService

	// Internal dependencies
	db *database.Manager
}

// NewContainer connects to the database, bootstraps the schema and wires
// the repository and service layers
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := config.SetupLogger(cfg)

	db := database.NewManager(cfg.Database.ToRepositoryConfig(), logger)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos := gormrepo.NewRepositoryContainer(db.GetDB(), logger)

	serviceContainer, err := services.NewServiceContainer(repos, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"driver":          cfg.Database.Driver,
		"deployment_mode": config.GetDeploymentMode(),
	}).Info("Container initialized")

	return &Container{
		Config:         cfg,
		Logger:         logger,
		ProfileService: serviceContainer.ProfileService,
		db:             db,
	}, nil
}

// Database returns the database manager, which also serves health checks
func (c *Container) Database() *database.Manager {
	return c.db
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
