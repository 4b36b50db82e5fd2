package dto

import (
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/feed"
)

// FeedStatsDTO reports how a feed generation ran.
type FeedStatsDTO struct {
	PoolSize   int  `json:"pool_size"`
	Considered int  `json:"considered"`
	Returned   int  `json:"returned"`
	Seeded     bool `json:"seeded"`
}

// FeedResponse is one generated feed page.
type FeedResponse struct {
	Posts     []PostDTO           `json:"posts"`
	Algorithm string              `json:"algorithm"`
	Weights   feed.ScoringWeights `json:"weights"`
	Stats     FeedStatsDTO        `json:"stats"`
	Note      string              `json:"note,omitempty"`
}

// NewFeedResponse maps an engine result to its transport shape.
func NewFeedResponse(result *feed.Result) FeedResponse {
	posts := make([]PostDTO, 0, len(result.Items))
	for _, item := range result.Items {
		posts = append(posts, NewFeedPostDTO(item))
	}
	return FeedResponse{
		Posts:     posts,
		Algorithm: result.Algorithm,
		Weights:   result.Weights,
		Stats: FeedStatsDTO{
			PoolSize:   result.Stats.PoolSize,
			Considered: result.Stats.Considered,
			Returned:   result.Stats.Returned,
			Seeded:     result.Stats.Seeded,
		},
	}
}

// TrendingPostDTO is one trending entry with its engagement score.
type TrendingPostDTO struct {
	Post  PostDTO `json:"post"`
	Score float64 `json:"score"`
}

// TrendingResponse is one page of the public trending list.
type TrendingResponse struct {
	Posts       []TrendingPostDTO `json:"posts"`
	WindowHours int               `json:"window_hours"`
	Note        string            `json:"note,omitempty"`
}

// NewTrendingResponse maps ranker output to its transport shape.
func NewTrendingResponse(items []feed.TrendingItem, windowHours int) TrendingResponse {
	posts := make([]TrendingPostDTO, 0, len(items))
	for _, item := range items {
		posts = append(posts, TrendingPostDTO{
			Post:  NewPostDTO(item.Post),
			Score: item.Score,
		})
	}
	return TrendingResponse{Posts: posts, WindowHours: windowHours}
}
