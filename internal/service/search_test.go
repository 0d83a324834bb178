package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCandidates(posts []*models.Post) *postRepoStub {
	repo := noopPostRepo()
	repo.listPublishedFn = func(_ context.Context, _, _ int) ([]*models.Post, error) {
		return posts, nil
	}
	return repo
}

func TestSearchService_EmptyQueryShortCircuits(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	called := false
	repo.listPublishedFn = func(_ context.Context, _, _ int) ([]*models.Post, error) {
		called = true
		return nil, nil
	}
	svc := NewSearchService(repo)

	for _, q := range []string{"", "   ", "\t\n"} {
		res, err := svc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.True(t, res.Empty)
		assert.Nil(t, res.Results)
		assert.Nil(t, res.Related)
	}
	assert.False(t, called, "blank queries must not hit the database")
}

func TestSearchService_TitleMatchScoresSix(t *testing.T) {
	t.Parallel()

	posts := []*models.Post{
		{ID: 1, Title: "Go Concurrency", Categories: models.StringList{"Technology"}},
		{ID: 2, Title: "Cooking Basics", Categories: models.StringList{"Lifestyle"}},
	}
	svc := NewSearchService(fixedCandidates(posts))

	res, err := svc.Search(context.Background(), "go")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, uint(1), res.Results[0].ID)
	assert.Empty(t, res.Related)
}

func TestSearchService_WeightTable(t *testing.T) {
	t.Parallel()

	// One field each, so ordering exposes the raw weights:
	// title 6 > category 5 > content 4 > author 3.
	posts := []*models.Post{
		{ID: 1, Title: "meeting notes", Content: "nothing", Author: models.User{Name: "Dana"}},
		{ID: 2, Title: "daily", Content: "the sprint paper", Author: models.User{Name: "Dana"}},
		{ID: 3, Title: "daily", Content: "nothing", Categories: models.StringList{"Sprint Planning"}, Author: models.User{Name: "Dana"}},
		{ID: 4, Title: "sprint review", Content: "nothing", Author: models.User{Name: "Dana"}},
		{ID: 5, Title: "daily", Content: "nothing", Author: models.User{Name: "Sprinter"}},
	}
	svc := NewSearchService(fixedCandidates(posts))

	res, err := svc.Search(context.Background(), "sprint")
	require.NoError(t, err)
	require.Len(t, res.Results, 4)
	assert.Equal(t, uint(4), res.Results[0].ID, "title match outranks everything")
	assert.Equal(t, uint(3), res.Results[1].ID, "category beats content")
	assert.Equal(t, uint(2), res.Results[2].ID, "content beats author")
	assert.Equal(t, uint(5), res.Results[3].ID, "author name is the weakest signal")
}

func TestSearchService_TokenContributesOncePerField(t *testing.T) {
	t.Parallel()

	// "go" appears in title, content, category and author: 6+4+5+3 = 18,
	// which must outrank a double title mention worth a flat 6.
	posts := []*models.Post{
		{ID: 1, Title: "go go go", Content: "none"},
		{ID: 2, Title: "going places", Content: "learn go fast", Categories: models.StringList{"Golang"}, Author: models.User{Name: "Margo"}},
	}
	svc := NewSearchService(fixedCandidates(posts))

	res, err := svc.Search(context.Background(), "go")
	require.NoError(t, err)
	require.Len(t, res.Results, 2)
	assert.Equal(t, uint(2), res.Results[0].ID)
}

func TestSearchService_MultiTokenSumsAcrossTokens(t *testing.T) {
	t.Parallel()

	posts := []*models.Post{
		{ID: 1, Title: "rust basics"},       // one title token: 6
		{ID: 2, Title: "rust memory model"}, // two title tokens: 12
	}
	svc := NewSearchService(fixedCandidates(posts))

	res, err := svc.Search(context.Background(), "rust memory")
	require.NoError(t, err)
	require.Len(t, res.Results, 2)
	assert.Equal(t, uint(2), res.Results[0].ID)
}

func TestSearchService_StableTieBreakKeepsCandidateOrder(t *testing.T) {
	t.Parallel()

	// Identical scores must come back in candidate (newest-first) order.
	posts := []*models.Post{
		{ID: 10, Title: "docker on arm"},
		{ID: 11, Title: "docker for beginners"},
		{ID: 12, Title: "docker compose tips"},
	}
	svc := NewSearchService(fixedCandidates(posts))

	res, err := svc.Search(context.Background(), "docker")
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Equal(t, uint(10), res.Results[0].ID)
	assert.Equal(t, uint(11), res.Results[1].ID)
	assert.Equal(t, uint(12), res.Results[2].ID)
}

func TestSearchService_CaseInsensitive(t *testing.T) {
	t.Parallel()

	posts := []*models.Post{{ID: 1, Title: "GraphQL Deep Dive"}}
	svc := NewSearchService(fixedCandidates(posts))

	res, err := svc.Search(context.Background(), "GRAPHQL")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
}

func TestSearchService_RelatedFallback(t *testing.T) {
	t.Parallel()

	posts := make([]*models.Post, 0, 7)
	for i := uint(1); i <= 7; i++ {
		posts = append(posts, &models.Post{ID: i, Title: "entry", Content: "text"})
	}
	svc := NewSearchService(fixedCandidates(posts))

	res, err := svc.Search(context.Background(), "zzzzzz")
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	require.Len(t, res.Related, 5, "related is capped at five")
	for i, p := range res.Related {
		assert.Equal(t, uint(i+1), p.ID, "related keeps the candidate order")
	}
}

func TestSearchService_RelatedWithFewCandidates(t *testing.T) {
	t.Parallel()

	posts := []*models.Post{{ID: 1, Title: "only one"}}
	svc := NewSearchService(fixedCandidates(posts))

	res, err := svc.Search(context.Background(), "nomatch")
	require.NoError(t, err)
	require.Len(t, res.Related, 1)
}

func TestSearchService_RepoErrorPropagates(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repoErr := errors.New("connection refused")
	repo.listPublishedFn = func(_ context.Context, _, _ int) ([]*models.Post, error) {
		return nil, repoErr
	}
	svc := NewSearchService(repo)

	_, err := svc.Search(context.Background(), "anything")
	assert.ErrorIs(t, err, repoErr)
}
