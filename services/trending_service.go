package services

import (
	"context"
	"fmt"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/cache"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/config"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/dto"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/feed"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/metrics"
)

// TrendingService serves the public trending list with a short Redis
// cache in front of the ranker. The list is identical for every caller,
// which is what makes the cache worthwhile.
type TrendingService struct {
	ranker             *feed.TrendingRanker
	defaultWindowHours int
	maxWindowHours     int
	cacheTTL           time.Duration
}

func NewTrendingService(provider feed.DataProvider) *TrendingService {
	cfg := config.GetConfig()
	scorer := &feed.EngagementScorer{
		Weights: feed.CounterWeights{
			Likes:     cfg.Feed.CounterWeights.Likes,
			Agrees:    cfg.Feed.CounterWeights.Agrees,
			Shares:    cfg.Feed.CounterWeights.Shares,
			Comments:  cfg.Feed.CounterWeights.Comments,
			Dislikes:  cfg.Feed.CounterWeights.Dislikes,
			Disagrees: cfg.Feed.CounterWeights.Disagrees,
			Reports:   cfg.Feed.CounterWeights.Reports,
			Views:     cfg.Feed.CounterWeights.Views,
		},
		HalfLifeHours: cfg.Feed.HalfLifeHours,
		DecayFloor:    cfg.Feed.DecayFloor,
	}
	return &TrendingService{
		ranker:             feed.NewTrendingRanker(provider, scorer),
		defaultWindowHours: cfg.Trending.DefaultWindowHours,
		maxWindowHours:     cfg.Trending.MaxWindowHours,
		cacheTTL:           time.Duration(cfg.Trending.CacheTTLSeconds) * time.Second,
	}
}

// Trending returns the engagement-ranked posts of the window, from cache
// when the same page was ranked within the TTL. A content source outage
// degrades to an empty list with a note.
func (s *TrendingService) Trending(ctx context.Context, windowHours, limit, offset int) (*dto.TrendingResponse, error) {
	if windowHours <= 0 {
		windowHours = s.defaultWindowHours
	}
	if windowHours > s.maxWindowHours {
		windowHours = s.maxWindowHours
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	key := fmt.Sprintf("trending:%d:%d:%d", windowHours, limit, offset)
	var cached dto.TrendingResponse
	if err := cache.GetJSON(ctx, key, &cached); err == nil {
		metrics.TrendingCacheHitsTotal.WithLabelValues("hit").Inc()
		return &cached, nil
	}
	metrics.TrendingCacheHitsTotal.WithLabelValues("miss").Inc()

	items, err := s.ranker.Rank(ctx, windowHours, limit, offset)
	if err != nil {
		if feed.IsSourceUnavailable(err) {
			logger.Log.Errorf("trending degraded: %v", err)
			return &dto.TrendingResponse{
				Posts:       []dto.TrendingPostDTO{},
				WindowHours: windowHours,
				Note:        "trending temporarily degraded",
			}, nil
		}
		return nil, err
	}

	resp := dto.NewTrendingResponse(items, windowHours)
	cache.SetJSON(ctx, key, resp, s.cacheTTL)
	return &resp, nil
}
