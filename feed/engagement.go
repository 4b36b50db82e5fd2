package feed

import (
	"math"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

// CounterWeights maps raw interaction counters to their contribution in
// the engagement score. These are configuration, not business rules:
// deployments tune them through the feed section of config.yaml.
type CounterWeights struct {
	Likes     float64
	Agrees    float64
	Shares    float64
	Comments  float64
	Dislikes  float64
	Disagrees float64
	Reports   float64
	Views     float64
}

// DefaultCounterWeights returns the shipped counter weighting. Comments
// outweigh likes because they represent deeper engagement; reports are a
// strong negative signal.
func DefaultCounterWeights() CounterWeights {
	return CounterWeights{
		Likes:     1,
		Agrees:    1,
		Shares:    3,
		Comments:  2,
		Dislikes:  -0.5,
		Disagrees: -0.5,
		Reports:   -5,
		Views:     0.01,
	}
}

// EngagementMetrics is the scoring-time view of a post's counters plus
// the derived comment-engagement sub-score. It is recomputed on every
// pass and never persisted.
type EngagementMetrics struct {
	Counts            models.EngagementCounts
	CommentEngagement float64
}

// CommentEngagement aggregates each comment's own reaction counters into
// one sub-score, normalized by comment count so a single viral comment
// does not dominate a post with few comments.
func CommentEngagement(comments []models.Comment) float64 {
	if len(comments) == 0 {
		return 0
	}
	var sum float64
	for _, c := range comments {
		sum += float64(c.Counts.Likes + c.Counts.Agrees - c.Counts.Dislikes - c.Counts.Disagrees)
	}
	return sum / float64(len(comments))
}

// EngagementScorer turns raw counters into one comparable score used for
// trending ranking. The scorer never fails: missing counters count as
// zero and unknown reputation falls back to models.DefaultReputation.
type EngagementScorer struct {
	Weights CounterWeights

	// HalfLifeHours controls the exponential time decay: a post loses
	// half of its remaining decay headroom every half-life.
	HalfLifeHours float64

	// DecayFloor keeps the decay multiplier strictly positive so old
	// high-engagement content is strongly deprioritized, never erased.
	DecayFloor float64
}

// NewEngagementScorer returns a scorer with the shipped defaults
// (half-life 18h, floor 0.05).
func NewEngagementScorer() *EngagementScorer {
	return &EngagementScorer{
		Weights:       DefaultCounterWeights(),
		HalfLifeHours: 18,
		DecayFloor:    0.05,
	}
}

// Score computes the engagement score of one post at the given instant.
// reputation is the author's 0-100 trust value; nil means unknown.
//
// Negative raw sums (heavy reports/dislikes) clamp to zero before decay,
// so the final score is always non-negative and sort-stable.
func (s *EngagementScorer) Score(m EngagementMetrics, createdAt time.Time, reputation *int, now time.Time) float64 {
	c := m.Counts
	raw := s.Weights.Likes*float64(c.Likes) +
		s.Weights.Agrees*float64(c.Agrees) +
		s.Weights.Shares*float64(c.Shares) +
		s.Weights.Comments*float64(c.Comments) +
		s.Weights.Dislikes*float64(c.Dislikes) +
		s.Weights.Disagrees*float64(c.Disagrees) +
		s.Weights.Reports*float64(c.Reports) +
		s.Weights.Views*float64(c.Views)

	raw += m.CommentEngagement

	if raw < 0 {
		raw = 0
	}

	return raw * s.decay(createdAt, now) * reputationMultiplier(reputation)
}

// decay returns floor + (1-floor) * 0.5^(ageHours/halfLife), clamped so
// future timestamps (clock skew) count as zero age.
func (s *EngagementScorer) decay(createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	halfLife := s.HalfLifeHours
	if halfLife <= 0 {
		halfLife = 18
	}
	floor := s.DecayFloor
	if floor < 0 {
		floor = 0
	}
	return floor + (1-floor)*math.Pow(0.5, ageHours/halfLife)
}

// reputationMultiplier damps low-reputation authors linearly from 0.5x
// at reputation 0 up to 1.0x at reputation >= 70. Reputation informs
// ranking, it never censors.
func reputationMultiplier(reputation *int) float64 {
	rep := models.DefaultReputation
	if reputation != nil {
		rep = *reputation
	}
	if rep < 0 {
		rep = 0
	}
	if rep >= models.DefaultReputation {
		return 1.0
	}
	return 0.5 + 0.5*float64(rep)/float64(models.DefaultReputation)
}
