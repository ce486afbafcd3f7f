package repositories

import (
	"context"

	"profile-api/internal/models"
)

// BaseRepository defines common CRUD operations for all repositories
type BaseRepository[T any] interface {
	// Create inserts a new entity and fills in its generated ID
	Create(ctx context.Context, entity *T) error

	// GetByID retrieves an entity by its ID; a missing row yields ErrNotFound
	GetByID(ctx context.Context, id uint) (*T, error)

	// Update saves an existing entity
	Update(ctx context.Context, entity *T) error

	// Delete deletes an entity by its ID; a missing row yields ErrNotFound
	Delete(ctx context.Context, id uint) error

	// List retrieves all entities ordered by ID
	List(ctx context.Context) ([]*T, error)

	// Count returns the total number of entities
	Count(ctx context.Context) (int64, error)

	// Exists checks if an entity with the given ID exists
	Exists(ctx context.Context, id uint) (bool, error)
}

// ProfileRepository defines operations specific to profile management
type ProfileRepository interface {
	BaseRepository[models.Profile]

	// GetByEmail retrieves a profile by its unique email address
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}
