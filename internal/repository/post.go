package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleEffect describes what a reaction toggle did to the stored row.
type ToggleEffect string

const (
	ToggleAdded   ToggleEffect = "added"
	ToggleChanged ToggleEffect = "changed"
	ToggleRemoved ToggleEffect = "removed"
)

// MonthlyCount is one month's worth of created rows for the analytics view.
type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// CountDrift reports a post whose stored comments_count disagreed with
// the live comment rows.
type CountDrift struct {
	PostID uint
	Stored int
	Actual int
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	// ListPublished returns published posts with authors preloaded,
	// newest first. It backs both the public listing and the search
	// candidate set.
	ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) (*models.Post, error)

	IncrementCommentsCount(ctx context.Context, postID uint) error
	DecrementCommentsCount(ctx context.Context, postID uint) error
	ToggleReaction(ctx context.Context, postID, userID uint, kind models.ReactionKind) (*models.Post, ToggleEffect, error)
	ReconcileCommentsCount(ctx context.Context) ([]CountDrift, error)

	Count(ctx context.Context) (int64, error)
	CountPublished(ctx context.Context) (int64, error)
	CountReactions(ctx context.Context) (int64, error)
	MonthlyCounts(ctx context.Context, since time.Time) ([]MonthlyCount, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.ObserveQuery("insert", "posts", time.Now())
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewValidationError("A post with this title already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.ObserveQuery("select", "posts", time.Now())
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	defer observability.ObserveQuery("select", "posts", time.Now())
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	defer observability.ObserveQuery("select", "posts", time.Now())
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	defer observability.ObserveQuery("select", "posts", time.Now())
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	defer observability.ObserveQuery("select", "posts", time.Now())
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.ObserveQuery("update", "posts", time.Now())
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewValidationError("A post with this title already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.ObserveQuery("delete", "posts", time.Now())
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post")
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) SetPublished(ctx context.Context, id uint, published bool) (*models.Post, error) {
	defer observability.ObserveQuery("update", "posts", time.Now())
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("is_published", published)
	if result.Error != nil {
		return nil, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Post")
	}
	cache.InvalidatePost(ctx, id)
	return r.GetByID(ctx, id)
}

// IncrementCommentsCount bumps the counter with SQL arithmetic so
// concurrent comment writers never clobber each other's update.
func (r *postRepository) IncrementCommentsCount(ctx context.Context, postID uint) error {
	defer observability.ObserveQuery("update", "posts", time.Now())
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1))
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post")
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// DecrementCommentsCount mirrors the increment but never drives the
// counter below zero.
func (r *postRepository) DecrementCommentsCount(ctx context.Context, postID uint) error {
	defer observability.ObserveQuery("update", "posts", time.Now())
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND comments_count > 0", postID).
		UpdateColumn("comments_count", gorm.Expr("comments_count - ?", 1))
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// ToggleReaction applies the toggle cycle inside one transaction: no
// reaction -> add, same kind -> remove, different kind -> overwrite.
// The post row is locked for the duration so concurrent toggles on the
// same post serialize, and reactions_count is re-derived from the
// reaction rows before commit.
func (r *postRepository) ToggleReaction(ctx context.Context, postID, userID uint, kind models.ReactionKind) (*models.Post, ToggleEffect, error) {
	defer observability.ObserveQuery("toggle", "reactions", time.Now())

	var post models.Post
	var effect ToggleEffect

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// SQLite (tests) serializes writes on its own and rejects FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&post, postID).Error; err != nil {
			return err
		}

		var existing models.Reaction
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			effect = ToggleAdded
			if err := tx.Create(&models.Reaction{PostID: postID, UserID: userID, Kind: kind}).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.Kind == kind:
			effect = ToggleRemoved
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		default:
			effect = ToggleChanged
			if err := tx.Model(&existing).UpdateColumn("kind", kind).Error; err != nil {
				return err
			}
		}

		var total int64
		if err := tx.Model(&models.Reaction{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&post).UpdateColumn("reactions_count", total).Error; err != nil {
			return err
		}
		post.ReactionsCount = int(total)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", models.NewNotFoundError("Post")
		}
		return nil, "", models.NewInternalError(err)
	}

	observability.ReactionToggles.WithLabelValues(string(effect)).Inc()
	cache.InvalidatePost(ctx, postID)
	return &post, effect, nil
}

// ReconcileCommentsCount sweeps every post and rewrites comments_count
// from the live comment rows, returning the posts that had drifted.
func (r *postRepository) ReconcileCommentsCount(ctx context.Context) ([]CountDrift, error) {
	defer observability.ObserveQuery("reconcile", "posts", time.Now())

	type row struct {
		ID            uint
		CommentsCount int
		Actual        int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.id, posts.comments_count, " +
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS actual").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var drifts []CountDrift
	for _, rw := range rows {
		if rw.CommentsCount == rw.Actual {
			continue
		}
		result := r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("id = ?", rw.ID).
			UpdateColumn("comments_count", rw.Actual)
		if result.Error != nil {
			return drifts, models.NewInternalError(result.Error)
		}
		observability.CommentsCountDrift.Inc()
		cache.InvalidatePost(ctx, rw.ID)
		drifts = append(drifts, CountDrift{PostID: rw.ID, Stored: rw.CommentsCount, Actual: rw.Actual})
	}
	return drifts, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("is_published = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) CountReactions(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Reaction{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// MonthlyCounts groups post creation by calendar month since the given
// time. strftime keeps the query portable to the sqlite test driver.
func (r *postRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]MonthlyCount, error) {
	defer observability.ObserveQuery("aggregate", "posts", time.Now())

	sel := "CAST(EXTRACT(YEAR FROM created_at) AS INT) AS year, CAST(EXTRACT(MONTH FROM created_at) AS INT) AS month, COUNT(*) AS count"
	if r.db.Dialector.Name() == "sqlite" {
		sel = "CAST(strftime('%Y', created_at) AS INT) AS year, CAST(strftime('%m', created_at) AS INT) AS month, COUNT(*) AS count"
	}

	var counts []MonthlyCount
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(sel).
		Where("created_at >= ?", since).
		Group("year, month").
		Order("year, month").
		Scan(&counts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}
