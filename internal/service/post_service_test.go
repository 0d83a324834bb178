package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), neverAdmin)
	ctx := context.Background()

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Content: "body"})
		assertValidationError(t, err)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Title: "Hi there"})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{
			AuthorID: 1,
			Title:    "Hi there",
			Content:  strings.Repeat("x", maxContentLen+1),
		})
		assertValidationError(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{
			AuthorID:   1,
			Title:      "Hi there",
			Content:    "body",
			Categories: []string{"Gardening"},
		})
		assertValidationError(t, err)
	})

	t.Run("title without slug material", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Title: "!!!", Content: "body"})
		assertValidationError(t, err)
	})
}

func TestPostService_CreatePost_SlugAndDefaults(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	var created *models.Post
	repo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 7
		created = p
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return created, nil
	}
	svc := NewPostService(repo, neverAdmin)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: 3,
		Title:    "Hello, World!",
		Content:  "body",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, models.StringList{"General"}, post.Categories, "categories default to General")
	assert.True(t, post.IsPublished)
}

func TestPostService_UpdatePost_SlugRegeneration(t *testing.T) {
	t.Parallel()

	stored := &models.Post{ID: 1, Title: "Original Title", Slug: "original-title", Content: "body", AuthorID: 5}
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		snapshot := *stored
		return &snapshot, nil
	}
	repo.updateFn = func(_ context.Context, p *models.Post) error {
		stored = p
		return nil
	}
	svc := NewPostService(repo, neverAdmin)
	ctx := context.Background()

	t.Run("unchanged title keeps slug", func(t *testing.T) {
		newContent := "rewritten body"
		_, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: 5, PostID: 1, Content: &newContent})
		require.NoError(t, err)
		assert.Equal(t, "original-title", stored.Slug)
		assert.Equal(t, "rewritten body", stored.Content)
	})

	t.Run("new title regenerates slug", func(t *testing.T) {
		newTitle := "Fresh Take, Again!"
		_, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: 5, PostID: 1, Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "fresh-take-again", stored.Slug)
	})
}

func TestPostService_UpdatePost_Authorization(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return &models.Post{ID: 1, AuthorID: 5, Title: "T", Content: "c"}, nil
	}

	t.Run("stranger is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(repo, neverAdmin)
		title := "New"
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 9, PostID: 1, Title: &title})
		assertForbiddenError(t, err)
	})

	t.Run("admin may edit", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(repo, alwaysAdmin)
		title := "New Title"
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 9, PostID: 1, Title: &title})
		require.NoError(t, err)
	})
}

func TestPostService_DeletePost_Authorization(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return &models.Post{ID: 1, AuthorID: 5}, nil
	}

	svc := NewPostService(repo, neverAdmin)
	assertForbiddenError(t, svc.DeletePost(context.Background(), 9, 1))
	require.NoError(t, svc.DeletePost(context.Background(), 5, 1))
}

func TestPostService_ToggleReaction_InvalidKind(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), neverAdmin)
	_, _, err := svc.ToggleReaction(context.Background(), 1, 1, "thumbsup")
	assertValidationError(t, err)
}

func TestPostService_ToggleReaction_PassesThrough(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.toggleReactionFn = func(_ context.Context, postID, userID uint, kind models.ReactionKind) (*models.Post, repository.ToggleEffect, error) {
		assert.Equal(t, uint(2), postID)
		assert.Equal(t, uint(3), userID)
		assert.Equal(t, models.ReactionLove, kind)
		return &models.Post{ID: postID, ReactionsCount: 1}, repository.ToggleAdded, nil
	}
	svc := NewPostService(repo, neverAdmin)

	post, effect, err := svc.ToggleReaction(context.Background(), 2, 3, models.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, repository.ToggleAdded, effect)
	assert.Equal(t, 1, post.ReactionsCount)
}
