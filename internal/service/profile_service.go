package service

import (
	"context"
	"errors"

	"collabhub/internal/models"
	"collabhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileInput struct {
	FullName     *string
	Role         *string
	Organization *string
	Bio          *string
	ContactEmail *string
	AvatarURL    *string
}

type ProfileService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Update(ctx context.Context, id uuid.UUID, input ProfileInput) (*models.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profiles.List(ctx)
}

// Update overwrites the editable fields of the caller's own profile.
// Verification status is admin-only and never touched here.
func (s *profileService) Update(ctx context.Context, id uuid.UUID, input ProfileInput) (*models.Profile, error) {
	if input.Role != nil && *input.Role != "" && !models.ValidRole(*input.Role) {
		return nil, ErrInvalidRole
	}

	profile, err := s.profiles.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	profile.FullName = input.FullName
	profile.Role = input.Role
	profile.Organization = input.Organization
	profile.Bio = input.Bio
	profile.ContactEmail = input.ContactEmail
	profile.AvatarURL = input.AvatarURL

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
