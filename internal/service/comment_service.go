package service

import (
	"context"
	"errors"
	"strings"

	"collabhub/internal/models"
	"collabhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCommentLength = 2000

type CommentService interface {
	Create(ctx context.Context, postID, authorID uuid.UUID, content string) (*models.Comment, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	profiles repository.ProfileRepository
}

func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	profiles repository.ProfileRepository,
) CommentService {
	return &commentService{comments: comments, posts: posts, profiles: profiles}
}

func (s *commentService) Create(ctx context.Context, postID, authorID uuid.UUID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > maxCommentLength {
		return nil, ErrContentTooLong
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if author, err := s.profiles.GetByID(ctx, authorID); err == nil {
		comment.Author = author
	}
	return comment, nil
}

// Delete removes exactly one comment, and only for its author.
func (s *commentService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID {
		return ErrForbidden
	}

	return s.comments.Delete(ctx, id)
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}
