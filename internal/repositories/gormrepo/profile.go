package gormrepo

import (
	"context"
	"time"

	"profile-api/internal/models"
	"profile-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const profileEntity = "profile"

// ProfileRepository implements repositories.ProfileRepository with gorm
type ProfileRepository struct {
	*BaseRepository[models.Profile]
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB, logger *logrus.Logger) repositories.ProfileRepository {
	return &ProfileRepository{
		BaseRepository: NewBaseRepository[models.Profile](db, profileEntity, logger),
	}
}

// Create inserts a profile and fills in its generated ID
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := profile.Validate(); err != nil {
		return repositories.ValidationError(profileEntity, "", err)
	}

	start := time.Now()
	profile.ID = 0
	err := r.getDB(ctx).Create(profile).Error
	r.logOperation("create", "", time.Since(start), err)
	if err != nil {
		return classifyError("create", profileEntity, "", err)
	}

	r.logger.WithFields(logrus.Fields{
		"profile_id": profile.ID,
	}).Debug("Profile created")

	return nil
}

// GetByID retrieves a profile by its ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	start := time.Now()
	var profile models.Profile
	err := r.getDB(ctx).First(&profile, id).Error
	r.logOperation("get", formatID(id), time.Since(start), err)
	if err != nil {
		return nil, classifyError("get", profileEntity, formatID(id), err)
	}

	return &profile, nil
}

// GetByEmail retrieves a profile by its email address
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	start := time.Now()
	var profile models.Profile
	err := r.getDB(ctx).Where("email = ?", email).First(&profile).Error
	r.logOperation("get_by_email", "", time.Since(start), err)
	if err != nil {
		return nil, classifyError("get_by_email", profileEntity, email, err)
	}

	return &profile, nil
}

// Update writes every column of an existing profile
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.validateID(profile.ID); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return repositories.ValidationError(profileEntity, formatID(profile.ID), err)
	}

	start := time.Now()
	result := r.getDB(ctx).
		Model(&models.Profile{}).
		Where("id = ?", profile.ID).
		Select("first_name", "last_name", "email", "age").
		Updates(profile)
	r.logOperation("update", formatID(profile.ID), time.Since(start), result.Error)
	if result.Error != nil {
		return classifyError("update", profileEntity, formatID(profile.ID), result.Error)
	}

	// MySQL reports zero affected rows when nothing changed
	if result.RowsAffected == 0 {
		exists, err := r.Exists(ctx, profile.ID)
		if err != nil {
			return err
		}
		if !exists {
			return repositories.NotFoundError(profileEntity, formatID(profile.ID))
		}
	}

	return nil
}

// Delete removes a profile by its ID
func (r *ProfileRepository) Delete(ctx context.Context, id uint) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	start := time.Now()
	result := r.getDB(ctx).Delete(&models.Profile{}, id)
	r.logOperation("delete", formatID(id), time.Since(start), result.Error)
	if result.Error != nil {
		return classifyError("delete", profileEntity, formatID(id), result.Error)
	}

	if result.RowsAffected == 0 {
		return repositories.NotFoundError(profileEntity, formatID(id))
	}

	return nil
}

// List retrieves all profiles ordered by ID
func (r *ProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	start := time.Now()
	profiles := make([]*models.Profile, 0)
	err := r.getDB(ctx).Order("id ASC").Find(&profiles).Error
	r.logOperation("list", "", time.Since(start), err)
	if err != nil {
		return nil, classifyError("list", profileEntity, "", err)
	}

	return profiles, nil
}
