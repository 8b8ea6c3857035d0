package service

import (
	"context"
	"testing"

	"collabhub/internal/models"
	"collabhub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validPostInput() PostInput {
	return PostInput{
		PostType:       models.PostTypeFeatureRequest,
		Title:          "Streaming export for large result sets",
		Description:    "Current export loads everything into memory.",
		Tags:           []string{"performance", "export"},
		SkillsRequired: []string{"go", "postgres"},
	}
}

func TestCreatePostDefaultsToOpen(t *testing.T) {
	posts := newFakePostRepo()
	svc := NewPostService(posts)
	author := uuid.New()

	post, err := svc.Create(context.Background(), author, validPostInput())
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusOpen, post.Status)
	assert.Equal(t, author, post.AuthorID)
	assert.JSONEq(t, `["performance","export"]`, string(post.Tags))
}

func TestCreatePostNilSlicesBecomeEmptyArrays(t *testing.T) {
	svc := NewPostService(newFakePostRepo())

	input := validPostInput()
	input.Tags = nil
	input.SkillsRequired = nil

	post, err := svc.Create(context.Background(), uuid.New(), input)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(post.Tags))
	assert.Equal(t, `[]`, string(post.SkillsRequired))
}

func TestCreatePostValidation(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()
	author := uuid.New()

	input := validPostInput()
	input.PostType = "announcement"
	_, err := svc.Create(ctx, author, input)
	assert.ErrorIs(t, err, ErrInvalidPostType)

	input = validPostInput()
	input.Title = "   "
	_, err = svc.Create(ctx, author, input)
	assert.ErrorIs(t, err, ErrEmptyContent)

	input = validPostInput()
	input.Description = ""
	_, err = svc.Create(ctx, author, input)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestGetPostNotFound(t *testing.T) {
	svc := NewPostService(newFakePostRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()
	author := uuid.New()

	post, err := svc.Create(ctx, author, validPostInput())
	require.NoError(t, err)

	input := validPostInput()
	input.Title = "Streaming export, chunked"
	_, err = svc.Update(ctx, post.ID, uuid.New(), input)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, post.ID, author, input)
	require.NoError(t, err)
	assert.Equal(t, "Streaming export, chunked", updated.Title)
}

func TestUpdatePostReplacesOptionalFields(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()
	author := uuid.New()

	input := validPostInput()
	input.Timeline = strPtr("Q3")
	input.HasFunding = true
	input.FundingDetails = strPtr("internal budget")
	post, err := svc.Create(ctx, author, input)
	require.NoError(t, err)

	// An update without the optional fields clears them.
	updated, err := svc.Update(ctx, post.ID, author, validPostInput())
	require.NoError(t, err)
	assert.Nil(t, updated.Timeline)
	assert.False(t, updated.HasFunding)
	assert.Nil(t, updated.FundingDetails)
}

func TestUpdateStatusRules(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()
	author := uuid.New()

	post, err := svc.Create(ctx, author, validPostInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, post.ID, author, "archived"), ErrInvalidPostStatus)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, post.ID, uuid.New(), models.PostStatusCompleted), ErrForbidden)

	require.NoError(t, svc.UpdateStatus(ctx, post.ID, author, models.PostStatusCompleted))

	got, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusCompleted, got.Status)

	// Statuses carry no ordering, reopening is allowed.
	require.NoError(t, svc.UpdateStatus(ctx, post.ID, author, models.PostStatusOpen))
}

func TestListPostsFilters(t *testing.T) {
	posts := newFakePostRepo()
	svc := NewPostService(posts)
	ctx := context.Background()
	author := uuid.New()

	fr := validPostInput()
	_, err := svc.Create(ctx, author, fr)
	require.NoError(t, err)

	rt := PostInput{
		PostType:       models.PostTypeResearchTopic,
		Title:          "Query optimizer cost models",
		Description:    "Seeking benchmark workloads.",
		Tags:           []string{"databases"},
		SkillsRequired: []string{"c++"},
		HasFunding:     true,
	}
	_, err = svc.Create(ctx, author, rt)
	require.NoError(t, err)

	byType, err := svc.List(ctx, repository.PostFilter{PostType: models.PostTypeResearchTopic})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Query optimizer cost models", byType[0].Title)

	funded := true
	byFunding, err := svc.List(ctx, repository.PostFilter{HasFunding: &funded})
	require.NoError(t, err)
	require.Len(t, byFunding, 1)
	assert.True(t, byFunding[0].HasFunding)

	bySearch, err := svc.List(ctx, repository.PostFilter{Search: "optimizer"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)

	byTag, err := svc.List(ctx, repository.PostFilter{Tags: []string{"export", "unrelated"}})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, models.PostTypeFeatureRequest, byTag[0].PostType)

	all, err := svc.List(ctx, repository.PostFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListPostsNewestFirst(t *testing.T) {
	svc := NewPostService(newFakePostRepo())
	ctx := context.Background()
	author := uuid.New()

	first, err := svc.Create(ctx, author, validPostInput())
	require.NoError(t, err)
	second, err := svc.Create(ctx, author, validPostInput())
	require.NoError(t, err)

	listed, err := svc.List(ctx, repository.PostFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}
