package feed

import (
	"errors"
	"testing"
)

func TestMergeReplacesOnlyProvidedKeys(t *testing.T) {
	defaults := DefaultScoringWeights()
	merged, err := defaults.Merge(map[string]float64{
		"recency":    0.9,
		"randomness": 0,
	})
	if err != nil {
		t.Fatal(err)
	}
	if merged.Recency != 0.9 || merged.Randomness != 0 {
		t.Fatalf("overridden keys not applied: %+v", merged)
	}
	if merged.Reputation != defaults.Reputation ||
		merged.Relationship != defaults.Relationship ||
		merged.TopicSimilarity != defaults.TopicSimilarity {
		t.Fatalf("untouched keys must keep defaults: %+v", merged)
	}
}

func TestMergeRejectsUnknownKey(t *testing.T) {
	_, err := DefaultScoringWeights().Merge(map[string]float64{"recentcy": 0.5})
	if !errors.Is(err, ErrUnknownWeightKey) {
		t.Fatalf("typo'd key must be rejected, got %v", err)
	}
}

func TestMergeRejectsNegativeValue(t *testing.T) {
	_, err := DefaultScoringWeights().Merge(map[string]float64{"recency": -0.1})
	if !errors.Is(err, ErrInvalidWeightValue) {
		t.Fatalf("negative weight must be rejected, got %v", err)
	}
}

func TestMergeNilOverridesKeepsDefaults(t *testing.T) {
	defaults := DefaultScoringWeights()
	merged, err := defaults.Merge(nil)
	if err != nil {
		t.Fatal(err)
	}
	if merged != defaults {
		t.Fatalf("nil overrides must be a no-op: %+v", merged)
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	// The default configuration is the calibration baseline; masses are
	// combined without re-normalization, so the baseline itself sums to 1.
	if sum := DefaultScoringWeights().Sum(); sum < 0.999 || sum > 1.001 {
		t.Fatalf("default weights must sum to 1.0, got %v", sum)
	}
}
