package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"collabhub/internal/models"
	"collabhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes used across the service tests. They mirror
// the ordering and filtering semantics of the postgres implementations.

var fakeClock = struct {
	sync.Mutex
	now time.Time
}{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

func nextTime() time.Time {
	fakeClock.Lock()
	defer fakeClock.Unlock()
	fakeClock.now = fakeClock.now.Add(time.Second)
	return fakeClock.now
}

// --- users ---

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = nextTime()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --- profiles ---

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *models.Profile) error {
	if existing, ok := r.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
		profile.IsVerified = existing.IsVerified
	} else {
		profile.CreatedAt = nextTime()
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) EnsureExists(_ context.Context, id uuid.UUID) error {
	if _, ok := r.profiles[id]; !ok {
		r.profiles[id] = &models.Profile{ID: id, CreatedAt: nextTime()}
	}
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) List(_ context.Context) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, *p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
	return profiles, nil
}

func (r *fakeProfileRepo) Save(_ context.Context, profile *models.Profile) error {
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) SetVerified(_ context.Context, id uuid.UUID, verified bool) error {
	profile, ok := r.profiles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	profile.IsVerified = verified
	return nil
}

// --- posts ---

type fakePostRepo struct {
	posts map[uuid.UUID]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*models.Post)}
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	post.CreatedAt = nextTime()
	post.UpdatedAt = post.CreatedAt
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (r *fakePostRepo) List(_ context.Context, filter repository.PostFilter) ([]models.Post, error) {
	var posts []models.Post
	for _, p := range r.posts {
		if filter.PostType != "" && p.PostType != filter.PostType {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.HasFunding != nil && p.HasFunding != *filter.HasFunding {
			continue
		}
		if filter.Search != "" && !matchesSearch(p, filter.Search) {
			continue
		}
		if len(filter.Tags) > 0 && !overlaps(p.Tags, filter.Tags) {
			continue
		}
		if len(filter.Skills) > 0 && !overlaps(p.SkillsRequired, filter.Skills) {
			continue
		}
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func matchesSearch(p *models.Post, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	return p.OpenSourceProject != nil &&
		strings.Contains(strings.ToLower(*p.OpenSourceProject), needle)
}

func overlaps(stored []byte, wanted []string) bool {
	var values []string
	if err := json.Unmarshal(stored, &values); err != nil {
		return false
	}
	for _, v := range values {
		for _, w := range wanted {
			if v == w {
				return true
			}
		}
	}
	return false
}

func (r *fakePostRepo) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]models.Post, error) {
	var posts []models.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			posts = append(posts, *p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]models.Post, error) {
	var posts []models.Post
	for _, p := range r.posts {
		posts = append(posts, *p)
	}
	return posts, nil
}

func (r *fakePostRepo) Save(_ context.Context, post *models.Post) error {
	post.UpdatedAt = nextTime()
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	post, ok := r.posts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	post.Status = status
	return nil
}

// --- collaborations ---

type fakeCollabRepo struct {
	collabs map[uuid.UUID]*models.Collaboration
}

func newFakeCollabRepo() *fakeCollabRepo {
	return &fakeCollabRepo{collabs: make(map[uuid.UUID]*models.Collaboration)}
}

func (r *fakeCollabRepo) Upsert(_ context.Context, collab *models.Collaboration) error {
	for _, existing := range r.collabs {
		if existing.PostID == collab.PostID && existing.UserID == collab.UserID {
			collab.ID = existing.ID
			collab.CreatedAt = nextTime()
			r.collabs[collab.ID] = collab
			return nil
		}
	}
	collab.ID = uuid.New()
	collab.CreatedAt = nextTime()
	r.collabs[collab.ID] = collab
	return nil
}

func (r *fakeCollabRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Collaboration, error) {
	collab, ok := r.collabs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return collab, nil
}

func (r *fakeCollabRepo) GetByUserAndPost(_ context.Context, userID, postID uuid.UUID) (*models.Collaboration, error) {
	for _, c := range r.collabs {
		if c.UserID == userID && c.PostID == postID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCollabRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Collaboration, error) {
	var collabs []models.Collaboration
	for _, c := range r.collabs {
		if c.UserID == userID && c.Status != models.CollaborationWithdrawn {
			collabs = append(collabs, *c)
		}
	}
	sort.Slice(collabs, func(i, j int) bool {
		return collabs[i].CreatedAt.After(collabs[j].CreatedAt)
	})
	return collabs, nil
}

func (r *fakeCollabRepo) ListActive(_ context.Context) ([]models.Collaboration, error) {
	var collabs []models.Collaboration
	for _, c := range r.collabs {
		if c.Status == models.CollaborationActive {
			collabs = append(collabs, *c)
		}
	}
	return collabs, nil
}

func (r *fakeCollabRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	collab, ok := r.collabs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	collab.Status = status
	return nil
}

// --- comments ---

type fakeCommentRepo struct {
	comments map[uuid.UUID]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*models.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	comment.ID = uuid.New()
	comment.CreatedAt = nextTime()
	comment.UpdatedAt = comment.CreatedAt
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (r *fakeCommentRepo) ListByPost(_ context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.comments, id)
	return nil
}

// --- cache ---

type fakeCacheRepo struct {
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (r *fakeCacheRepo) Get(_ context.Context, key string) (string, error) {
	return r.values[key], nil
}

func (r *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		r.values[key] = v
	case []byte:
		r.values[key] = string(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		r.values[key] = string(data)
	}
	return nil
}

func (r *fakeCacheRepo) Delete(_ context.Context, key string) error {
	delete(r.values, key)
	return nil
}

func (r *fakeCacheRepo) Exists(_ context.Context, key string) (bool, error) {
	_, ok := r.values[key]
	return ok, nil
}
