// Package service contains the application's business logic.
package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const maxContentLen = 50000 // 50K characters

// PostService coordinates post business rules on top of the repository.
type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	AuthorID      uint
	Title         string
	Content       string
	Categories    []string
	Tags          []string
	CoverImageURL string
}

type UpdatePostInput struct {
	UserID        uint
	PostID        uint
	Title         *string
	Content       *string
	Categories    []string
	Tags          []string
	CoverImageURL *string
}

func NewPostService(
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		isAdmin:  isAdmin,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	categories := in.Categories
	if len(categories) == 0 {
		categories = []string{"General"}
	}
	for _, cat := range categories {
		if !models.IsValidCategory(cat) {
			return nil, models.NewValidationError("Invalid category: " + cat)
		}
	}

	slug := models.Slugify(in.Title)
	if slug == "" {
		return nil, models.NewValidationError("Title must contain at least one letter or digit")
	}

	post := &models.Post{
		Title:         strings.TrimSpace(in.Title),
		Content:       in.Content,
		Slug:          slug,
		AuthorID:      in.AuthorID,
		Categories:    categories,
		Tags:          in.Tags,
		CoverImageURL: in.CoverImageURL,
		IsPublished:   true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.postRepo.ListPublished(ctx, limit, offset)
}

func (s *PostService) ListAllPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.postRepo.ListAll(ctx, limit, offset)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.postRepo.GetBySlug(ctx, slug)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, in.UserID, post.AuthorID); err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != post.Title {
		if err := validation.ValidatePostTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = strings.TrimSpace(*in.Title)
		// The slug tracks the title; unchanged titles keep their slug
		// so published URLs stay stable.
		slug := models.Slugify(post.Title)
		if slug == "" {
			return nil, models.NewValidationError("Title must contain at least one letter or digit")
		}
		post.Slug = slug
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content is required")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = *in.Content
	}
	if in.Categories != nil {
		for _, cat := range in.Categories {
			if !models.IsValidCategory(cat) {
				return nil, models.NewValidationError("Invalid category: " + cat)
			}
		}
		post.Categories = in.Categories
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}
	if in.CoverImageURL != nil {
		post.CoverImageURL = *in.CoverImageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost soft-deletes the post. Its comments stay in place so the
// reconcile sweep and the admin recent-comments view keep working.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, userID, post.AuthorID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// ApprovePost flips a post's published flag. The handler gates this to
// admins.
func (s *PostService) ApprovePost(ctx context.Context, postID uint, published bool) (*models.Post, error) {
	return s.postRepo.SetPublished(ctx, postID, published)
}

// ToggleReaction validates the kind and applies the toggle cycle.
func (s *PostService) ToggleReaction(ctx context.Context, postID, userID uint, kind models.ReactionKind) (*models.Post, repository.ToggleEffect, error) {
	if !kind.IsValid() {
		return nil, "", models.NewValidationError("Invalid reaction type")
	}
	return s.postRepo.ToggleReaction(ctx, postID, userID, kind)
}

func (s *PostService) authorize(ctx context.Context, userID, ownerID uint) error {
	if userID == ownerID {
		return nil
	}
	admin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewForbiddenError("Not allowed to modify this post")
	}
	return nil
}
