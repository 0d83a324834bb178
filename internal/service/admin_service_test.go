package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_GetStats(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.countFn = func(_ context.Context) (int64, error) { return 4, nil }
	postRepo := noopPostRepo()
	postRepo.countFn = func(_ context.Context) (int64, error) { return 10, nil }
	postRepo.countPublishedFn = func(_ context.Context) (int64, error) { return 8, nil }
	postRepo.countReactionsFn = func(_ context.Context) (int64, error) { return 31, nil }
	postRepo.listAllFn = func(_ context.Context, limit, _ int) ([]*models.Post, error) {
		assert.Equal(t, 5, limit)
		return []*models.Post{{Title: "newest"}, {Title: "older"}}, nil
	}
	commentRepo := noopCommentRepo()
	commentRepo.countFn = func(_ context.Context) (int64, error) { return 17, nil }

	svc := NewAdminService(userRepo, postRepo, commentRepo)
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Users)
	assert.Equal(t, int64(10), stats.Posts)
	assert.Equal(t, int64(8), stats.PublishedPosts)
	assert.Equal(t, int64(17), stats.Comments)
	assert.Equal(t, int64(31), stats.Reactions)
	require.Len(t, stats.LatestPosts, 2)
	assert.Equal(t, "newest", stats.LatestPosts[0].Title)
}

func TestAdminService_GetAnalytics_ZeroFillsTwelveMonths(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	postRepo := noopPostRepo()
	postRepo.monthlyCountsFn = func(_ context.Context, since time.Time) ([]repository.MonthlyCount, error) {
		assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), since)
		return []repository.MonthlyCount{
			{Year: 2025, Month: 6, Count: 3},
			{Year: 2026, Month: 3, Count: 5},
		}, nil
	}

	userRepo := noopUserRepo()
	userRepo.monthlyFn = func(_ context.Context, _ time.Time) ([]repository.MonthlyCount, error) {
		return []repository.MonthlyCount{{Year: 2026, Month: 3, Count: 2}}, nil
	}

	svc := NewAdminService(userRepo, postRepo, noopCommentRepo())
	buckets, err := svc.GetAnalytics(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, buckets, 12)

	assert.Equal(t, 2025, buckets[0].Year)
	assert.Equal(t, 4, buckets[0].Month)
	assert.Equal(t, int64(0), buckets[0].Posts)
	assert.Equal(t, int64(0), buckets[0].Users)

	assert.Equal(t, int64(3), buckets[2].Posts, "June 2025 carries its count")
	last := buckets[11]
	assert.Equal(t, 2026, last.Year)
	assert.Equal(t, 3, last.Month)
	assert.Equal(t, int64(5), last.Posts)
	assert.Equal(t, int64(2), last.Users)

	var zeros int
	for _, b := range buckets {
		if b.Posts == 0 {
			zeros++
		}
	}
	assert.Equal(t, 10, zeros)
}

func TestAdminService_ReconcileCommentsCount(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.reconcileFn = func(_ context.Context) ([]repository.CountDrift, error) {
		return []repository.CountDrift{
			{PostID: 1, Stored: 4, Actual: 2},
			{PostID: 9, Stored: 0, Actual: 1},
		}, nil
	}

	svc := NewAdminService(noopUserRepo(), postRepo, noopCommentRepo())
	repaired, err := svc.ReconcileCommentsCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repaired)
}
