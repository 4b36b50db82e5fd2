package feed

import (
	"math"
	"math/rand"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

// relationshipBaseline is the relationship score of content from authors
// the viewer does not follow. A non-zero baseline is what keeps the feed
// from collapsing into a plain following feed.
const relationshipBaseline = 0.3

// ViewerContext carries everything viewer-specific a feed generation
// needs, threaded explicitly through every call. UserID is empty for
// anonymous viewers.
type ViewerContext struct {
	UserID          string
	Following       map[string]struct{}
	InterestVector  []float64
	State           string
	City            string
	WeightOverrides map[string]float64
}

// Follows reports whether the viewer follows the given author.
func (v ViewerContext) Follows(authorID string) bool {
	_, ok := v.Following[authorID]
	return ok
}

// FactorScores holds the per-factor signals of one candidate, each
// bounded [0,1].
type FactorScores struct {
	Recency         float64 `json:"recency"`
	Reputation      float64 `json:"reputation"`
	Relationship    float64 `json:"relationship"`
	TopicSimilarity float64 `json:"topicSimilarity"`
	Randomness      float64 `json:"randomness"`
}

// Candidate is one pool entry after scoring: the post, its factor scores
// and the combined probability mass.
type Candidate struct {
	Post    models.Post
	Scores  FactorScores
	Mass    float64
	IsLiked bool
}

// scoreCandidate computes factor scores and the combined mass for one
// post. rng supplies the per-item randomness draw.
func scoreCandidate(post models.Post, viewer ViewerContext, weights ScoringWeights, reputation *int, halfLifeHours float64, now time.Time, rng *rand.Rand) Candidate {
	scores := FactorScores{
		Recency:         recencyScore(post.CreatedAt, halfLifeHours, now),
		Reputation:      reputationScore(reputation),
		Relationship:    relationshipScore(viewer, post.Author.ID.Hex()),
		TopicSimilarity: topicSimilarityScore(post.Embedding, viewer.InterestVector),
		Randomness:      rng.Float64(),
	}

	mass := weights.Recency*scores.Recency +
		weights.Reputation*scores.Reputation +
		weights.Relationship*scores.Relationship +
		weights.TopicSimilarity*scores.TopicSimilarity +
		weights.Randomness*scores.Randomness

	return Candidate{Post: post, Scores: scores, Mass: mass}
}

// recencyScore is a pure half-life decay of age: 1.0 at creation,
// halving every halfLifeHours, floored at 0 only asymptotically.
func recencyScore(createdAt time.Time, halfLifeHours float64, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	if halfLifeHours <= 0 {
		halfLifeHours = 18
	}
	return math.Pow(0.5, ageHours/halfLifeHours)
}

// reputationScore maps the 0-100 author reputation onto [0,1]; unknown
// reputation defaults to models.DefaultReputation.
func reputationScore(reputation *int) float64 {
	rep := models.DefaultReputation
	if reputation != nil {
		rep = *reputation
	}
	if rep < 0 {
		rep = 0
	}
	if rep > 100 {
		rep = 100
	}
	return float64(rep) / 100
}

func relationshipScore(viewer ViewerContext, authorID string) float64 {
	if viewer.Follows(authorID) {
		return 1.0
	}
	return relationshipBaseline
}

// topicSimilarityScore maps the cosine similarity of the post embedding
// and the viewer interest vector from [-1,1] onto [0,1]. Missing vectors
// score 0 (degraded input, never an error).
func topicSimilarityScore(embedding, interest []float64) float64 {
	cos, ok := cosineSimilarity(embedding, interest)
	if !ok {
		return 0
	}
	return (cos + 1) / 2
}

// cosineSimilarity returns the cosine of the angle between a and b. ok
// is false when either vector is missing, mismatched or zero-length.
func cosineSimilarity(a, b []float64) (float64, bool) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
