package services

import (
	"context"

	"profile-api/internal/models"
)

// ProfileService defines the interface for profile business logic
type ProfileService interface {
	// ListProfiles returns every profile ordered by id
	ListProfiles(ctx context.Context) ([]*models.Profile, error)

	// GetProfile returns one profile or a NotFound error
	GetProfile(ctx context.Context, id uint) (*models.Profile, error)

	// CreateProfile validates the request and inserts a profile in one unit of work
	CreateProfile(ctx context.Context, req *CreateProfileRequest) (*models.Profile, error)

	// UpdateProfile overwrites email and age of an existing profile
	UpdateProfile(ctx context.Context, id uint, req *UpdateProfileRequest) (*models.Profile, error)

	// DeleteProfile removes a profile or returns a NotFound error
	DeleteProfile(ctx context.Context, id uint) error
}

// CreateProfileRequest represents a request to create a new profile
type CreateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,max=20" example:"Ana"`
	LastName  string `json:"last_name" validate:"required,max=20" example:"Lopez"`
	Email     string `json:"email" validate:"required,max=20" example:"ana@example.io"`
	Age       *int   `json:"age" validate:"required" example:"30"`
}

// UpdateProfileRequest represents a request to update a profile.
// ID is only read on the body-addressed route; a path id takes precedence.
// Name fields are accepted for compatibility and ignored.
type UpdateProfileRequest struct {
	ID        *uint   `json:"id,omitempty" validate:"omitempty,gt=0" example:"1"`
	FirstName *string `json:"first_name,omitempty" validate:"-" swaggerignore:"true"`
	LastName  *string `json:"last_name,omitempty" validate:"-" swaggerignore:"true"`
	Email     string  `json:"email" validate:"required,max=20" example:"ana@example.io"`
	Age       *int    `json:"age" validate:"required" example:"31"`
}
