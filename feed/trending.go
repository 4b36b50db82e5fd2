package feed

import (
	"context"
	"sort"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

// TrendingItem is one entry of a trending list: the post and its
// engagement score at generation time.
type TrendingItem struct {
	Post  models.Post `json:"post"`
	Score float64     `json:"score"`
}

// TrendingRanker produces the public, non-personalized trending list:
// engagement-scored and sorted descending, no sampling randomness.
type TrendingRanker struct {
	provider DataProvider
	scorer   *EngagementScorer
	maxPool  int

	now func() time.Time
}

// NewTrendingRanker builds a ranker over the given content source.
// scorer may be nil, in which case the shipped defaults apply.
func NewTrendingRanker(provider DataProvider, scorer *EngagementScorer) *TrendingRanker {
	if scorer == nil {
		scorer = NewEngagementScorer()
	}
	return &TrendingRanker{
		provider: provider,
		scorer:   scorer,
		maxPool:  1000,
		now:      time.Now,
	}
}

// Rank returns the trending posts created within the last windowHours,
// sliced to [offset, offset+limit). Ties keep the fetch order (newest
// first), so the result is fully deterministic for a fixed corpus.
func (r *TrendingRanker) Rank(ctx context.Context, windowHours, limit, offset int) ([]TrendingItem, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if windowHours <= 0 {
		windowHours = 24
	}

	now := r.now()
	pool, err := r.provider.CandidatePosts(ctx, CandidateFilter{
		Limit: r.maxPool,
		Since: now.Add(-time.Duration(windowHours) * time.Hour),
	})
	if err != nil {
		return nil, &SourceUnavailableError{Op: "trending fetch", Err: err}
	}
	if len(pool) == 0 {
		return []TrendingItem{}, nil
	}

	comments := r.lookupComments(ctx, pool)
	reputations := r.lookupReputations(ctx, pool)

	items := make([]TrendingItem, 0, len(pool))
	for _, post := range pool {
		metrics := EngagementMetrics{
			Counts:            post.Counts,
			CommentEngagement: CommentEngagement(comments[post.ID.Hex()]),
		}
		rep := reputations[post.Author.ID.Hex()]
		items = append(items, TrendingItem{
			Post:  post,
			Score: r.scorer.Score(metrics, post.CreatedAt, rep, now),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

// lookupComments loads the pool's comments for the comment-engagement
// sub-score. A failure degrades to zero sub-scores.
func (r *TrendingRanker) lookupComments(ctx context.Context, pool []models.Post) map[string][]models.Comment {
	ids := make([]string, 0, len(pool))
	for _, p := range pool {
		if p.Counts.Comments > 0 {
			ids = append(ids, p.ID.Hex())
		}
	}
	if len(ids) == 0 {
		return nil
	}
	comments, err := r.provider.CommentsForPosts(ctx, ids)
	if err != nil {
		logger.WarnWithFields("comment lookup failed, scoring without comment engagement", logger.Fields{
			"posts": len(ids),
			"error": err.Error(),
		})
		return nil
	}
	return comments
}

func (r *TrendingRanker) lookupReputations(ctx context.Context, pool []models.Post) map[string]*int {
	seen := make(map[string]struct{}, len(pool))
	ids := make([]string, 0, len(pool))
	for _, p := range pool {
		hex := p.Author.ID.Hex()
		if _, ok := seen[hex]; ok || p.Author.ID.IsZero() {
			continue
		}
		seen[hex] = struct{}{}
		ids = append(ids, hex)
	}
	reputations, err := r.provider.AuthorReputations(ctx, ids)
	if err != nil {
		logger.WarnWithFields("author reputation lookup failed, using defaults", logger.Fields{
			"authors": len(ids),
			"error":   err.Error(),
		})
		return nil
	}
	return reputations
}
