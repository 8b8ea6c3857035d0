package repository

import (
	"context"
	"errors"

	"collabhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.Profile) error
	EnsureExists(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Profile
		err := tx.First(&existing, "id = ?", profile.ID).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(profile).Error
		} else if err != nil {
			return err
		}

		profile.CreatedAt = existing.CreatedAt
		profile.IsVerified = existing.IsVerified
		return tx.Save(profile).Error
	})
}

// EnsureExists inserts a stub profile row if the user has none yet.
// Called on every successful authentication.
func (r *profileRepository) EnsureExists(ctx context.Context, id uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&models.Profile{ID: id}).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&profiles).
		Error
	return profiles, err
}

func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Update("is_verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
