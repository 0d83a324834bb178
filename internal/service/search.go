package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// Field weights for ranked search. Title outweighs category outweighs
// content outweighs author name.
const (
	titleWeight    = 6
	categoryWeight = 5
	contentWeight  = 4
	authorWeight   = 3
)

// relatedLimit caps the fallback list when nothing scores.
const relatedLimit = 5

// SearchResult is the outcome of a ranked search. Exactly one of
// Results and Related is populated for a non-empty query.
type SearchResult struct {
	Results []*models.Post
	Related []*models.Post
	// Empty marks a blank query, which short-circuits before any
	// candidate retrieval.
	Empty bool
}

// SearchService scores published posts against free-text queries.
type SearchService struct {
	postRepo repository.PostRepository
}

func NewSearchService(postRepo repository.PostRepository) *SearchService {
	return &SearchService{postRepo: postRepo}
}

// Search ranks every published post against the query. Posts scoring
// above zero come back ordered by score descending; ties keep the
// newest-first order of the candidate set. When nothing scores, the
// first five candidates come back as related content instead.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResult, error) {
	defer func(start time.Time) {
		observability.SearchLatency.Observe(time.Since(start).Seconds())
	}(time.Now())

	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		observability.SearchQueries.WithLabelValues("empty").Inc()
		return &SearchResult{Empty: true}, nil
	}

	// Candidates arrive newest first with authors resolved. -1 lifts
	// the limit: the scan is linear over the whole published corpus.
	candidates, err := s.postRepo.ListPublished(ctx, -1, 0)
	if err != nil {
		return nil, err
	}

	type scored struct {
		post  *models.Post
		score int
	}
	var matched []scored
	for _, post := range candidates {
		score := scorePost(post, tokens)
		if score > 0 {
			matched = append(matched, scored{post: post, score: score})
		}
	}

	if len(matched) == 0 {
		related := candidates
		if len(related) > relatedLimit {
			related = related[:relatedLimit]
		}
		observability.SearchQueries.WithLabelValues("related").Inc()
		return &SearchResult{Related: related}, nil
	}

	// Stable keeps the candidate order for equal scores.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	results := make([]*models.Post, len(matched))
	for i, m := range matched {
		results[i] = m.post
	}
	observability.SearchQueries.WithLabelValues("results").Inc()
	return &SearchResult{Results: results}, nil
}

// scorePost sums field weights over every token. A token contributes
// once per field it appears in, so a token hitting title and content
// adds 10.
func scorePost(post *models.Post, tokens []string) int {
	title := strings.ToLower(post.Title)
	content := strings.ToLower(post.Content)
	categories := strings.ToLower(strings.Join(post.Categories, " "))
	author := strings.ToLower(post.Author.Name)

	score := 0
	for _, token := range tokens {
		if strings.Contains(title, token) {
			score += titleWeight
		}
		if strings.Contains(content, token) {
			score += contentWeight
		}
		if strings.Contains(categories, token) {
			score += categoryWeight
		}
		if strings.Contains(author, token) {
			score += authorWeight
		}
	}
	return score
}
