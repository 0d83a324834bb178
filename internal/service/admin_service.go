package service

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// AdminService backs the admin dashboard and maintenance jobs.
type AdminService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// Stats is the dashboard headline view.
type Stats struct {
	Users          int64          `json:"users"`
	Posts          int64          `json:"posts"`
	PublishedPosts int64          `json:"published_posts"`
	Comments       int64          `json:"comments"`
	Reactions      int64          `json:"reactions"`
	LatestPosts    []*models.Post `json:"latest_posts"`
}

// MonthBucket is one month in the analytics series, zero-filled when
// nothing was created that month.
type MonthBucket struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Posts int64 `json:"posts"`
	Users int64 `json:"users"`
}

func NewAdminService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := cache.Aside(ctx, cache.StatsKey(), &stats, cache.StatsTTL, func() error {
		var err error
		if stats.Users, err = s.userRepo.Count(ctx); err != nil {
			return err
		}
		if stats.Posts, err = s.postRepo.Count(ctx); err != nil {
			return err
		}
		if stats.PublishedPosts, err = s.postRepo.CountPublished(ctx); err != nil {
			return err
		}
		if stats.Comments, err = s.commentRepo.Count(ctx); err != nil {
			return err
		}
		if stats.Reactions, err = s.postRepo.CountReactions(ctx); err != nil {
			return err
		}
		stats.LatestPosts, err = s.postRepo.ListAll(ctx, 5, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetAnalytics returns post and signup counts for the trailing twelve
// months, including the current one. Months without activity appear
// with zeros so charts render a continuous series.
func (s *AdminService) GetAnalytics(ctx context.Context, now time.Time) ([]MonthBucket, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)

	postCounts, err := s.postRepo.MonthlyCounts(ctx, start)
	if err != nil {
		return nil, err
	}
	userCounts, err := s.userRepo.MonthlyCounts(ctx, start)
	if err != nil {
		return nil, err
	}

	postsByMonth := make(map[[2]int]int64, len(postCounts))
	for _, c := range postCounts {
		postsByMonth[[2]int{c.Year, c.Month}] = c.Count
	}
	usersByMonth := make(map[[2]int]int64, len(userCounts))
	for _, c := range userCounts {
		usersByMonth[[2]int{c.Year, c.Month}] = c.Count
	}

	buckets := make([]MonthBucket, 0, 12)
	for i := 0; i < 12; i++ {
		m := start.AddDate(0, i, 0)
		key := [2]int{m.Year(), int(m.Month())}
		buckets = append(buckets, MonthBucket{
			Year:  m.Year(),
			Month: int(m.Month()),
			Posts: postsByMonth[key],
			Users: usersByMonth[key],
		})
	}
	return buckets, nil
}

// ReconcileCommentsCount sweeps stored counters against live comment
// rows and logs every repair.
func (s *AdminService) ReconcileCommentsCount(ctx context.Context) (int, error) {
	drifts, err := s.postRepo.ReconcileCommentsCount(ctx)
	if err != nil {
		return 0, err
	}
	for _, d := range drifts {
		slog.Info("repaired comments count",
			"post_id", d.PostID,
			"stored", d.Stored,
			"actual", d.Actual,
		)
	}
	return len(drifts), nil
}
