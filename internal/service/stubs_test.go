package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	getBySlugFn      func(context.Context, string) (*models.Post, error)
	listPublishedFn  func(context.Context, int, int) ([]*models.Post, error)
	listAllFn        func(context.Context, int, int) ([]*models.Post, error)
	listByAuthorFn   func(context.Context, uint, int, int) ([]*models.Post, error)
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
	setPublishedFn   func(context.Context, uint, bool) (*models.Post, error)
	incCommentsFn    func(context.Context, uint) error
	decCommentsFn    func(context.Context, uint) error
	toggleReactionFn func(context.Context, uint, uint, models.ReactionKind) (*models.Post, repository.ToggleEffect, error)
	reconcileFn      func(context.Context) ([]repository.CountDrift, error)
	countFn          func(context.Context) (int64, error)
	countPublishedFn func(context.Context) (int64, error)
	countReactionsFn func(context.Context) (int64, error)
	monthlyCountsFn  func(context.Context, time.Time) ([]repository.MonthlyCount, error)
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error { return s.createFn(ctx, p) }
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *postRepoStub) ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listPublishedFn(ctx, limit, offset)
}
func (s *postRepoStub) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, p *models.Post) error { return s.updateFn(ctx, p) }
func (s *postRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *postRepoStub) SetPublished(ctx context.Context, id uint, published bool) (*models.Post, error) {
	return s.setPublishedFn(ctx, id, published)
}
func (s *postRepoStub) IncrementCommentsCount(ctx context.Context, id uint) error {
	return s.incCommentsFn(ctx, id)
}
func (s *postRepoStub) DecrementCommentsCount(ctx context.Context, id uint) error {
	return s.decCommentsFn(ctx, id)
}
func (s *postRepoStub) ToggleReaction(ctx context.Context, postID, userID uint, kind models.ReactionKind) (*models.Post, repository.ToggleEffect, error) {
	return s.toggleReactionFn(ctx, postID, userID, kind)
}
func (s *postRepoStub) ReconcileCommentsCount(ctx context.Context) ([]repository.CountDrift, error) {
	return s.reconcileFn(ctx)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) { return s.countFn(ctx) }
func (s *postRepoStub) CountPublished(ctx context.Context) (int64, error) {
	return s.countPublishedFn(ctx)
}
func (s *postRepoStub) CountReactions(ctx context.Context) (int64, error) {
	return s.countReactionsFn(ctx)
}
func (s *postRepoStub) MonthlyCounts(ctx context.Context, since time.Time) ([]repository.MonthlyCount, error) {
	return s.monthlyCountsFn(ctx, since)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:    func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:   func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		getBySlugFn: func(_ context.Context, _ string) (*models.Post, error) { return &models.Post{}, nil },
		listPublishedFn: func(_ context.Context, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		listAllFn: func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		setPublishedFn: func(_ context.Context, _ uint, _ bool) (*models.Post, error) {
			return &models.Post{}, nil
		},
		incCommentsFn: func(_ context.Context, _ uint) error { return nil },
		decCommentsFn: func(_ context.Context, _ uint) error { return nil },
		toggleReactionFn: func(_ context.Context, _, _ uint, _ models.ReactionKind) (*models.Post, repository.ToggleEffect, error) {
			return &models.Post{}, repository.ToggleAdded, nil
		},
		reconcileFn:      func(_ context.Context) ([]repository.CountDrift, error) { return nil, nil },
		countFn:          func(_ context.Context) (int64, error) { return 0, nil },
		countPublishedFn: func(_ context.Context) (int64, error) { return 0, nil },
		countReactionsFn: func(_ context.Context) (int64, error) { return 0, nil },
		monthlyCountsFn: func(_ context.Context, _ time.Time) ([]repository.MonthlyCount, error) {
			return nil, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
	addReplyFn   func(context.Context, *models.Reply) error
	recentFn     func(context.Context, int) ([]models.Comment, error)
	countFn      func(context.Context) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *commentRepoStub) AddReply(ctx context.Context, r *models.Reply) error {
	return s.addReplyFn(ctx, r)
}
func (s *commentRepoStub) Recent(ctx context.Context, limit int) ([]models.Comment, error) {
	return s.recentFn(ctx, limit)
}
func (s *commentRepoStub) Count(ctx context.Context) (int64, error) { return s.countFn(ctx) }

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		addReplyFn:   func(_ context.Context, _ *models.Reply) error { return nil },
		recentFn:     func(_ context.Context, _ int) ([]models.Comment, error) { return nil, nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
	listFn       func(context.Context, int, int) ([]models.User, error)
	countFn      func(context.Context) (int64, error)
	monthlyFn    func(context.Context, time.Time) ([]repository.MonthlyCount, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) { return s.countFn(ctx) }
func (s *userRepoStub) MonthlyCounts(ctx context.Context, since time.Time) ([]repository.MonthlyCount, error) {
	return s.monthlyFn(ctx, since)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return &models.User{}, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		listFn:       func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
		monthlyFn: func(_ context.Context, _ time.Time) ([]repository.MonthlyCount, error) {
			return nil, nil
		},
	}
}

func neverAdmin(_ context.Context, _ uint) (bool, error)  { return false, nil }
func alwaysAdmin(_ context.Context, _ uint) (bool, error) { return true, nil }

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "FORBIDDEN", appErr.Code)
}
