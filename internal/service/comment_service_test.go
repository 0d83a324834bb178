package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), neverAdmin)
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		_, err := svc.AddComment(ctx, 1, 1, "   ")
		assertValidationError(t, err)
	})

	t.Run("text too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.AddComment(ctx, 1, 1, strings.Repeat("x", 2001))
		assertValidationError(t, err)
	})
}

func TestCommentService_AddComment_Success(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	repo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 42
		assert.Equal(t, "first!", c.Text)
		assert.Equal(t, uint(7), c.PostID)
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, Text: "first!", User: models.User{Name: "Ada"}}, nil
	}
	svc := NewCommentService(repo, noopPostRepo(), neverAdmin)

	comment, err := svc.AddComment(context.Background(), 7, 3, "  first!  ")
	require.NoError(t, err)
	assert.Equal(t, uint(42), comment.ID)
	assert.Equal(t, "Ada", comment.User.Name)
}

func TestCommentService_AddComment_PostNotFound(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	repo.createFn = func(_ context.Context, _ *models.Comment) error {
		return models.NewNotFoundError("Post")
	}
	svc := NewCommentService(repo, noopPostRepo(), neverAdmin)

	_, err := svc.AddComment(context.Background(), 99, 1, "hello")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCommentService_EditComment_OwnerOnly(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 5, Text: "old"}, nil
	}
	svc := NewCommentService(repo, noopPostRepo(), alwaysAdmin)

	// Even an admin cannot edit someone else's words.
	_, err := svc.EditComment(context.Background(), 1, 9, "new text")
	assertForbiddenError(t, err)

	var updated string
	repo.updateFn = func(_ context.Context, c *models.Comment) error {
		updated = c.Text
		return nil
	}
	_, err = svc.EditComment(context.Background(), 1, 5, "new text")
	require.NoError(t, err)
	assert.Equal(t, "new text", updated)
}

func TestCommentService_DeleteComment_OwnerOrAdmin(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 5}, nil
	}

	t.Run("stranger is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(repo, noopPostRepo(), neverAdmin)
		assertForbiddenError(t, svc.DeleteComment(context.Background(), 1, 9))
	})

	t.Run("owner may delete", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(repo, noopPostRepo(), neverAdmin)
		require.NoError(t, svc.DeleteComment(context.Background(), 1, 5))
	})

	t.Run("admin may delete", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(repo, noopPostRepo(), alwaysAdmin)
		require.NoError(t, svc.DeleteComment(context.Background(), 1, 9))
	})
}

func TestCommentService_ReplyToComment(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		if id != 1 {
			return nil, models.NewNotFoundError("Comment")
		}
		return &models.Comment{ID: 1, UserID: 5}, nil
	}
	var reply *models.Reply
	repo.addReplyFn = func(_ context.Context, r *models.Reply) error {
		reply = r
		return nil
	}
	svc := NewCommentService(repo, noopPostRepo(), neverAdmin)

	_, err := svc.ReplyToComment(context.Background(), 1, 9, "me too")
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, uint(1), reply.CommentID)
	assert.Equal(t, uint(9), reply.UserID)

	_, err = svc.ReplyToComment(context.Background(), 404, 9, "me too")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCommentService_RecentComments_ClampsLimit(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	var gotLimit int
	repo.recentFn = func(_ context.Context, limit int) ([]models.Comment, error) {
		gotLimit = limit
		return nil, nil
	}
	svc := NewCommentService(repo, noopPostRepo(), neverAdmin)

	_, err := svc.RecentComments(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)

	_, err = svc.RecentComments(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
}
