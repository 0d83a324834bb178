package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// CommentService coordinates comment business rules, keeping the parent
// post's comments count in step through the repository.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		isAdmin:     isAdmin,
	}
}

func (s *CommentService) AddComment(ctx context.Context, postID, userID uint, text string) (*models.Comment, error) {
	if err := validation.ValidateCommentText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := &models.Comment{
		Text:   strings.TrimSpace(text),
		PostID: postID,
		UserID: userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// EditComment updates the text of the caller's own comment. Editing
// never touches the parent post's comments count.
func (s *CommentService) EditComment(ctx context.Context, commentID, userID uint, text string) (*models.Comment, error) {
	if err := validation.ValidateCommentText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("Not allowed to edit this comment")
	}

	comment.Text = strings.TrimSpace(text)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID)
}

// DeleteComment removes a comment its owner or an admin points at and
// decrements the parent post's comments count.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("Not allowed to delete this comment")
		}
	}
	return s.commentRepo.Delete(ctx, commentID)
}

// ReplyToComment appends a reply under an existing comment. Replies do
// not count toward the post's comments count.
func (s *CommentService) ReplyToComment(ctx context.Context, commentID, userID uint, text string) (*models.Comment, error) {
	if err := validation.ValidateCommentText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}

	reply := &models.Reply{
		CommentID: commentID,
		UserID:    userID,
		Text:      strings.TrimSpace(text),
	}
	if err := s.commentRepo.AddReply(ctx, reply); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID)
}

// RecentComments backs the admin dashboard's latest-activity panel.
func (s *CommentService) RecentComments(ctx context.Context, limit int) ([]models.Comment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.commentRepo.Recent(ctx, limit)
}
