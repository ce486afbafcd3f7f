package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"profile-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	ProfileService ProfileService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repos *repositories.RepositoryContainer, logger *logrus.Logger) (*ServiceContainer, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository container cannot be nil")
	}

	if err := repos.Validate(); err != nil {
		return nil, fmt.Errorf("invalid repository container: %w", err)
	}

	return &ServiceContainer{
		ProfileService: NewProfileService(repos.ProfileRepo, repos.TxManager, logger),
	}, nil
}
