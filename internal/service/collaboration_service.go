package service

import (
	"context"
	"errors"

	"collabhub/internal/models"
	"collabhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollaborationService interface {
	Join(ctx context.Context, postID, userID uuid.UUID, message *string) (*models.Collaboration, error)
	Withdraw(ctx context.Context, id, actorID uuid.UUID) error
	Activate(ctx context.Context, id, actorID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Collaboration, error)
	GetByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Collaboration, error)
}

type collaborationService struct {
	collabs repository.CollaborationRepository
	posts   repository.PostRepository
}

func NewCollaborationService(
	collabs repository.CollaborationRepository,
	posts repository.PostRepository,
) CollaborationService {
	return &collaborationService{collabs: collabs, posts: posts}
}

// Join upserts the (post, user) row back to interested. Authors cannot
// join their own posts and completed posts accept no joins.
func (s *collaborationService) Join(ctx context.Context, postID, userID uuid.UUID, message *string) (*models.Collaboration, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if post.AuthorID == userID {
		return nil, ErrOwnPostJoin
	}
	if post.Status == models.PostStatusCompleted {
		return nil, ErrPostCompleted
	}

	collab := &models.Collaboration{
		PostID:  postID,
		UserID:  userID,
		Message: message,
		Status:  models.CollaborationInterested,
	}
	if err := s.collabs.Upsert(ctx, collab); err != nil {
		return nil, err
	}

	// reload with the collaborator's profile attached
	return s.collabs.GetByID(ctx, collab.ID)
}

// Withdraw is a self-service transition from interested or active.
func (s *collaborationService) Withdraw(ctx context.Context, id, actorID uuid.UUID) error {
	collab, err := s.collabs.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if collab.UserID != actorID {
		return ErrForbidden
	}
	if collab.Status == models.CollaborationWithdrawn {
		return ErrInvalidTransition
	}

	return s.collabs.UpdateStatus(ctx, id, models.CollaborationWithdrawn)
}

// Activate promotes interested to active. Only the post's author may do
// this, and only from interested: there is no demotion path and no
// reactivation of a withdrawn row.
func (s *collaborationService) Activate(ctx context.Context, id, actorID uuid.UUID) error {
	collab, err := s.collabs.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	post, err := s.posts.GetByID(ctx, collab.PostID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return ErrForbidden
	}
	if collab.Status != models.CollaborationInterested {
		return ErrInvalidTransition
	}

	return s.collabs.UpdateStatus(ctx, id, models.CollaborationActive)
}

func (s *collaborationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Collaboration, error) {
	return s.collabs.ListByUser(ctx, userID)
}

func (s *collaborationService) GetByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Collaboration, error) {
	collab, err := s.collabs.GetByUserAndPost(ctx, userID, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return collab, nil
}
