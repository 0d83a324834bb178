package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// TTLs per cached entity. Post pages change rarely; lists churn with
// every publish, so they get a shorter window.
const (
	PostTTL      = 5 * time.Minute
	PostsListTTL = 60 * time.Second
	StatsTTL     = 30 * time.Second
)

// PostKey returns the cache key for a single post.
func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// PostsListKey returns the cache key for the published-posts listing.
func PostsListKey() string {
	return "posts:list"
}

// StatsKey returns the cache key for admin dashboard stats.
func StatsKey() string {
	return "admin:stats"
}

// InvalidatePost drops the cached copy of a post and the listing that
// embeds it. Called after any write that touches the post row, counters
// included.
func InvalidatePost(ctx context.Context, id uint) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, PostKey(id), PostsListKey()).Err(); err != nil {
		slog.Warn("cache invalidation failed", "key", PostKey(id), "error", err)
	}
}

// InvalidatePostsList drops only the listing key.
func InvalidatePostsList(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, PostsListKey()).Err(); err != nil {
		slog.Warn("cache invalidation failed", "key", PostsListKey(), "error", err)
	}
}
