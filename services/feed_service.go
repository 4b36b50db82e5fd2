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

// maxPageSize caps the page size a single request can ask for.
const maxPageSize = 100

// FeedRequest is one personalized feed request as the handler parsed it.
type FeedRequest struct {
	ViewerID        string
	Limit           int
	Offset          int
	Seed            *int64
	WeightOverrides map[string]float64
	PoliticalOnly   bool
	Tags            []string
}

// FeedService wires the feed engine to its Mongo-backed content source
// and adds caching plus metrics around it.
type FeedService struct {
	engine   *feed.Engine
	cacheTTL time.Duration
}

// NewFeedService builds the service from the feed section of config.yaml.
func NewFeedService(provider feed.DataProvider) *FeedService {
	cfg := config.GetConfig().Feed
	engine := feed.NewEngine(provider, feed.Config{
		Weights: feed.ScoringWeights{
			Recency:         cfg.Weights.Recency,
			Reputation:      cfg.Weights.Reputation,
			Relationship:    cfg.Weights.Relationship,
			TopicSimilarity: cfg.Weights.TopicSimilarity,
			Randomness:      cfg.Weights.Randomness,
		},
		HalfLifeHours:        cfg.HalfLifeHours,
		PoolPad:              cfg.PoolPad,
		CandidateWindowHours: cfg.CandidateWindowHours,
	})
	return &FeedService{
		engine:   engine,
		cacheTTL: time.Duration(cfg.CacheTTLSeconds) * time.Second,
	}
}

// Generate produces one feed page.
//
// Invalid weight overrides are the caller's mistake and propagate as an
// error. A content source outage instead degrades to an empty page with
// an explanatory note, so feed consumers render an empty state rather
// than an error screen.
func (s *FeedService) Generate(ctx context.Context, req FeedRequest) (*dto.FeedResponse, error) {
	start := time.Now()
	if req.Limit > maxPageSize {
		req.Limit = maxPageSize
	}

	if key, ok := s.cacheKey(req); ok {
		var cached dto.FeedResponse
		if err := cache.GetJSON(ctx, key, &cached); err == nil {
			metrics.FeedGenerationsTotal.WithLabelValues("cached").Inc()
			return &cached, nil
		}
	}

	result, err := s.engine.Generate(ctx, feed.ViewerContext{
		UserID:          req.ViewerID,
		WeightOverrides: req.WeightOverrides,
	}, feed.Options{
		Limit:         req.Limit,
		Offset:        req.Offset,
		Seed:          req.Seed,
		PoliticalOnly: req.PoliticalOnly,
		Tags:          req.Tags,
	})
	if err != nil {
		if feed.IsSourceUnavailable(err) {
			logger.Log.Errorf("feed generation degraded: %v", err)
			metrics.FeedGenerationsTotal.WithLabelValues("degraded").Inc()
			return &dto.FeedResponse{
				Posts:     []dto.PostDTO{},
				Algorithm: feed.AlgorithmProbabilityCloud,
				Note:      "feed temporarily degraded",
			}, nil
		}
		metrics.FeedGenerationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	metrics.FeedGenerationsTotal.WithLabelValues("ok").Inc()
	metrics.FeedGenerationDuration.Observe(time.Since(start).Seconds())
	metrics.FeedPoolSize.Observe(float64(result.Stats.PoolSize))

	resp := dto.NewFeedResponse(result)
	if key, ok := s.cacheKey(req); ok {
		cache.SetJSON(ctx, key, resp, s.cacheTTL)
	}
	return &resp, nil
}

// cacheKey returns a cache key for the request, or ok=false when the
// request must not be cached. Only anonymous, unseeded, un-overridden
// pages are cacheable: everything else is viewer- or call-specific.
func (s *FeedService) cacheKey(req FeedRequest) (string, bool) {
	if req.ViewerID != "" || req.Seed != nil || len(req.WeightOverrides) > 0 ||
		req.PoliticalOnly || len(req.Tags) > 0 || s.cacheTTL <= 0 {
		return "", false
	}
	return fmt.Sprintf("feed:anon:%d:%d", req.Limit, req.Offset), true
}
