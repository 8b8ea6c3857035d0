package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"collabhub/internal/models"
	"collabhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostInput struct {
	PostType          string
	Title             string
	Description       string
	Tags              []string
	SkillsRequired    []string
	Timeline          *string
	HasFunding        bool
	FundingDetails    *string
	OpenSourceProject *string
}

type PostService interface {
	Create(ctx context.Context, authorID uuid.UUID, input PostInput) (*models.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Post, error)
	List(ctx context.Context, filter repository.PostFilter) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error)
	Update(ctx context.Context, id, actorID uuid.UUID, input PostInput) (*models.Post, error)
	UpdateStatus(ctx context.Context, id, actorID uuid.UUID, status string) error
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input PostInput) (*models.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:          authorID,
		PostType:          input.PostType,
		Title:             strings.TrimSpace(input.Title),
		Description:       input.Description,
		Tags:              toJSONSet(input.Tags),
		SkillsRequired:    toJSONSet(input.SkillsRequired),
		Timeline:          input.Timeline,
		HasFunding:        input.HasFunding,
		FundingDetails:    input.FundingDetails,
		OpenSourceProject: input.OpenSourceProject,
		Status:            models.PostStatusOpen,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, filter repository.PostFilter) ([]models.Post, error) {
	return s.posts.List(ctx, filter)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

// Update replaces the editable content fields. Only the author may edit.
func (s *postService) Update(ctx context.Context, id, actorID uuid.UUID, input PostInput) (*models.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, ErrForbidden
	}

	post.PostType = input.PostType
	post.Title = strings.TrimSpace(input.Title)
	post.Description = input.Description
	post.Tags = toJSONSet(input.Tags)
	post.SkillsRequired = toJSONSet(input.SkillsRequired)
	post.Timeline = input.Timeline
	post.HasFunding = input.HasFunding
	post.FundingDetails = input.FundingDetails
	post.OpenSourceProject = input.OpenSourceProject

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdateStatus is author-only. The three statuses carry no enforced
// ordering: an author may move a post back to open from completed.
func (s *postService) UpdateStatus(ctx context.Context, id, actorID uuid.UUID, status string) error {
	if !models.ValidPostStatus(status) {
		return ErrInvalidPostStatus
	}

	post, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return ErrForbidden
	}

	return s.posts.UpdateStatus(ctx, id, status)
}

func validatePostInput(input PostInput) error {
	if !models.ValidPostType(input.PostType) {
		return ErrInvalidPostType
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return ErrEmptyContent
	}
	return nil
}

func toJSONSet(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}
