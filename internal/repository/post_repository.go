package repository

import (
	"context"

	"collabhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostFilter narrows the browse query. Zero values mean "no filter".
type PostFilter struct {
	Search     string
	PostType   string
	Status     string
	HasFunding *bool
	Tags       []string
	Skills     []string
	Limit      int
	Offset     int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID loads the full detail view: author, collaborations with their
// profiles, and comments with their authors oldest-first.
func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Collaborations").
		Preload("Collaborations.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		First(&post, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR open_source_project ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.PostType != "" {
		query = query.Where("post_type = ?", filter.PostType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.HasFunding != nil {
		query = query.Where("has_funding = ?", *filter.HasFunding)
	}
	// jsonb_exists_any is the function form of the ?| overlap operator;
	// the operator itself would collide with gorm's placeholder syntax.
	if len(filter.Tags) > 0 {
		query = query.Where("jsonb_exists_any(tags, array[?])", filter.Tags)
	}
	if len(filter.Skills) > 0 {
		query = query.Where("jsonb_exists_any(skills_required, array[?])", filter.Skills)
	}

	var posts []models.Post
	err := query.Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).
		Error
	return posts, err
}

// ListAll is used by the admin aggregates, which rescan everything on
// each call instead of maintaining counters.
func (r *postRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Find(&posts).Error
	return posts, err
}

func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
