// Package metrics holds the service's Prometheus collectors, registered
// through promauto and served on /metrics by the API binary.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedGenerationsTotal counts feed generations by outcome
	// ("ok", "degraded", "rejected").
	FeedGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_generations_total",
			Help: "Total number of feed generation calls",
		},
		[]string{"status"},
	)

	// FeedGenerationDuration tracks end-to-end feed generation latency,
	// including the candidate pool fetch.
	FeedGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_generation_duration_seconds",
			Help:    "Duration of feed generation calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// FeedPoolSize observes candidate pool sizes actually fetched.
	FeedPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_candidate_pool_size",
			Help:    "Number of candidates fetched per feed generation",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800},
		},
	)

	// TrendingCacheHitsTotal counts trending lookups by cache outcome.
	TrendingCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trending_cache_lookups_total",
			Help: "Trending list lookups by cache outcome",
		},
		[]string{"outcome"},
	)

	// EngagementEventsTotal counts engagement events applied by the
	// engagement worker, by reaction kind.
	EngagementEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_events_applied_total",
			Help: "Engagement counter events applied to posts",
		},
		[]string{"kind"},
	)
)
