package feed

import (
	"fmt"
	"sort"
)

// Factor names accepted in per-request weight overrides.
const (
	FactorRecency         = "recency"
	FactorReputation      = "reputation"
	FactorRelationship    = "relationship"
	FactorTopicSimilarity = "topicSimilarity"
	FactorRandomness      = "randomness"
)

// ScoringWeights holds the factor weights of the probability cloud
// sampler as a closed struct. Keeping known keys as fields (instead of an
// open map) lets the boundary reject typos before a request runs with
// silently-defaulted weights.
//
// Weights are used as configured, without re-normalization; the default
// set sums to 1.0 and is the calibration baseline.
type ScoringWeights struct {
	Recency         float64 `json:"recency"`
	Reputation      float64 `json:"reputation"`
	Relationship    float64 `json:"relationship"`
	TopicSimilarity float64 `json:"topicSimilarity"`
	Randomness      float64 `json:"randomness"`
}

// DefaultScoringWeights returns the calibration baseline.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Recency:         0.30,
		Reputation:      0.15,
		Relationship:    0.25,
		TopicSimilarity: 0.15,
		Randomness:      0.15,
	}
}

// Merge applies caller-supplied overrides on top of w. Only the provided
// keys are replaced; unknown keys and negative values are rejected.
func (w ScoringWeights) Merge(overrides map[string]float64) (ScoringWeights, error) {
	// Iterate in sorted order so the reported error is deterministic
	// when several keys are bad.
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := w
	for _, k := range keys {
		v := overrides[k]
		if v < 0 {
			return ScoringWeights{}, fmt.Errorf("weight %q = %v: %w", k, v, ErrInvalidWeightValue)
		}
		switch k {
		case FactorRecency:
			merged.Recency = v
		case FactorReputation:
			merged.Reputation = v
		case FactorRelationship:
			merged.Relationship = v
		case FactorTopicSimilarity:
			merged.TopicSimilarity = v
		case FactorRandomness:
			merged.Randomness = v
		default:
			return ScoringWeights{}, fmt.Errorf("weight %q: %w", k, ErrUnknownWeightKey)
		}
	}
	return merged, nil
}

// Sum returns the total of all factor weights.
func (w ScoringWeights) Sum() float64 {
	return w.Recency + w.Reputation + w.Relationship + w.TopicSimilarity + w.Randomness
}
