package repository

import (
	"context"
	"errors"
	"time"

	"collabhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollaborationRepository interface {
	Upsert(ctx context.Context, collab *models.Collaboration) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Collaboration, error)
	GetByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Collaboration, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Collaboration, error)
	ListActive(ctx context.Context) ([]models.Collaboration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type collaborationRepository struct {
	db *gorm.DB
}

func NewCollaborationRepository(db *gorm.DB) CollaborationRepository {
	return &collaborationRepository{db: db}
}

// Upsert writes the single row for a (post, user) pair. A rejoin after a
// withdrawal resets the row to a fresh interested state; the unique index
// on the pair keeps concurrent joins from duplicating it.
func (r *collaborationRepository) Upsert(ctx context.Context, collab *models.Collaboration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Collaboration
		err := tx.Where("post_id = ? AND user_id = ?", collab.PostID, collab.UserID).
			First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(collab).Error
		} else if err != nil {
			return err
		}

		collab.ID = existing.ID
		collab.CreatedAt = time.Now().UTC()
		return tx.Save(collab).Error
	})
}

func (r *collaborationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Collaboration, error) {
	var collab models.Collaboration
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&collab, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &collab, nil
}

func (r *collaborationRepository) GetByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Collaboration, error) {
	var collab models.Collaboration
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&collab).
		Error
	if err != nil {
		return nil, err
	}
	return &collab, nil
}

// ListByUser returns the dashboard view: everything the user has joined
// and not withdrawn from, newest first, with the post and its author.
func (r *collaborationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Collaboration, error) {
	var collabs []models.Collaboration
	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.Author").
		Where("user_id = ? AND status <> ?", userID, models.CollaborationWithdrawn).
		Order("created_at DESC").
		Find(&collabs).
		Error
	return collabs, err
}

func (r *collaborationRepository) ListActive(ctx context.Context) ([]models.Collaboration, error) {
	var collabs []models.Collaboration
	err := r.db.WithContext(ctx).
		Where("status = ?", models.CollaborationActive).
		Find(&collabs).
		Error
	return collabs, err
}

func (r *collaborationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Collaboration{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
