package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"profile-api/internal/models"
	"profile-api/internal/repositories"
)

// profileService implements the ProfileService interface
type profileService struct {
	profileRepo repositories.ProfileRepository
	txManager   repositories.TransactionManager
	validator   *validator.Validate
	logger      *logrus.Logger
}

// NewProfileService creates a new profile service instance
func NewProfileService(profileRepo repositories.ProfileRepository, txManager repositories.TransactionManager, logger *logrus.Logger) ProfileService {
	if logger == nil {
		logger = logrus.New()
	}
	return &profileService{
		profileRepo: profileRepo,
		txManager:   txManager,
		validator:   models.NewValidator(),
		logger:      logger,
	}
}

// ListProfiles returns every profile ordered by id
func (s *profileService) ListProfiles(ctx context.Context) (profiles []*models.Profile, err error) {
	defer s.guard("list_profiles", 0, &err)

	profiles, err = s.profileRepo.List(ctx)
	if err != nil {
		return nil, translateError("list_profiles", err)
	}
	if profiles == nil {
		profiles = []*models.Profile{}
	}
	return profiles, nil
}

// GetProfile retrieves a profile by ID
func (s *profileService) GetProfile(ctx context.Context, id uint) (profile *models.Profile, err error) {
	defer s.guard("get_profile", id, &err)

	if id == 0 {
		return nil, NewInvalidInputError("get_profile", "profile id must be a positive integer", nil)
	}

	profile, err = s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateError("get_profile", err)
	}
	if profile == nil {
		return nil, NewNotFoundError("get_profile", id)
	}
	return profile, nil
}

// CreateProfile creates a new profile
func (s *profileService) CreateProfile(ctx context.Context, req *CreateProfileRequest) (profile *models.Profile, err error) {
	defer s.guard("create_profile", 0, &err)

	if req == nil {
		return nil, NewInvalidInputError("create_profile", "create profile request cannot be nil", nil)
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, NewInvalidInputError("create_profile", "validation failed", models.FieldErrors(err))
	}

	profile = models.NewProfile(req.FirstName, req.LastName, req.Email, *req.Age)

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailAvailable(ctx, profile.Email, 0); err != nil {
			return err
		}
		return s.profileRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, translateError("create_profile", err)
	}

	s.logger.WithFields(logrus.Fields{
		"operation":    "create_profile",
		"profile_id":   profile.ID,
		"display_name": profile.GetDisplayName(),
	}).Info("Profile created")

	return profile, nil
}

// UpdateProfile overwrites email and age. Names are immutable after creation.
func (s *profileService) UpdateProfile(ctx context.Context, id uint, req *UpdateProfileRequest) (profile *models.Profile, err error) {
	defer s.guard("update_profile", id, &err)

	if id == 0 {
		return nil, NewInvalidInputError("update_profile", "profile id must be a positive integer", nil)
	}

	if req == nil {
		return nil, NewInvalidInputError("update_profile", "update profile request cannot be nil", nil)
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, NewInvalidInputError("update_profile", "validation failed", models.FieldErrors(err))
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.profileRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return NewNotFoundError("update_profile", id)
		}

		if existing.Email != req.Email {
			if err := s.ensureEmailAvailable(ctx, req.Email, id); err != nil {
				return err
			}
		}

		existing.ApplyContactUpdate(req.Email, *req.Age)
		if err := s.profileRepo.Update(ctx, existing); err != nil {
			return err
		}

		profile = existing
		return nil
	})
	if err != nil {
		return nil, translateError("update_profile", err)
	}

	s.logger.WithFields(logrus.Fields{
		"operation":  "update_profile",
		"profile_id": id,
	}).Info("Profile updated")

	return profile, nil
}

// DeleteProfile deletes a profile by ID
func (s *profileService) DeleteProfile(ctx context.Context, id uint) (err error) {
	defer s.guard("delete_profile", id, &err)

	if id == 0 {
		return NewInvalidInputError("delete_profile", "profile id must be a positive integer", nil)
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.profileRepo.Delete(ctx, id)
	})
	if err != nil {
		return translateError("delete_profile", err)
	}

	s.logger.WithFields(logrus.Fields{
		"operation":  "delete_profile",
		"profile_id": id,
	}).Info("Profile deleted")

	return nil
}

// ensureEmailAvailable fails with a duplicate error when another profile holds email
func (s *profileService) ensureEmailAvailable(ctx context.Context, email string, ownerID uint) error {
	existing, err := s.profileRepo.GetByEmail(ctx, email)
	switch {
	case repositories.IsNotFound(err):
		return nil
	case err != nil:
		return err
	case existing != nil && existing.ID != ownerID:
		return repositories.DuplicateError("check_email", "profile", "email", nil)
	}
	return nil
}

// guard turns a panic into an InternalError and logs every failure once
func (s *profileService) guard(op string, id uint, errp *error) {
	if r := recover(); r != nil {
		*errp = &Error{Kind: KindInternal, Op: op, Message: "unexpected error", Err: fmt.Errorf("panic: %v", r)}
	}

	if *errp == nil {
		return
	}

	svcErr := AsError(*errp)
	*errp = svcErr

	fields := logrus.Fields{
		"operation": op,
		"kind":      svcErr.Kind.String(),
		"error":     svcErr.Error(),
	}
	if id != 0 {
		fields["profile_id"] = id
	}

	entry := s.logger.WithFields(fields)
	switch svcErr.Kind {
	case KindStorage, KindInternal:
		entry.Error("Profile operation failed")
	default:
		entry.Warn("Profile operation rejected")
	}
}
