package feed

import (
	"testing"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

func TestScoreMonotonicTimeDecay(t *testing.T) {
	scorer := NewEngagementScorer()
	now := time.Now()
	metrics := EngagementMetrics{Counts: models.EngagementCounts{Likes: 10, Comments: 3}}

	fresh := scorer.Score(metrics, now.Add(-1*time.Hour), nil, now)
	old := scorer.Score(metrics, now.Add(-48*time.Hour), nil, now)

	if fresh <= old {
		t.Fatalf("older post must score strictly lower: fresh=%v old=%v", fresh, old)
	}
	if old <= 0 {
		t.Fatalf("decay floor must keep old engaged content above zero, got %v", old)
	}
}

func TestScoreNegativeSumClampsToZero(t *testing.T) {
	scorer := NewEngagementScorer()
	now := time.Now()
	metrics := EngagementMetrics{Counts: models.EngagementCounts{Likes: 1, Reports: 50}}

	got := scorer.Score(metrics, now.Add(-1*time.Hour), nil, now)
	if got != 0 {
		t.Fatalf("heavily reported post must clamp to zero, got %v", got)
	}
}

func TestScoreZeroEngagementZeroAge(t *testing.T) {
	scorer := NewEngagementScorer()
	now := time.Now()

	got := scorer.Score(EngagementMetrics{}, now, nil, now)
	if got != 0 {
		t.Fatalf("zero engagement must score zero, got %v", got)
	}
}

func TestScoreCounterWeighting(t *testing.T) {
	scorer := NewEngagementScorer()
	now := time.Now()
	created := now // zero age, decay multiplier 1 at floor+headroom

	cases := []struct {
		name   string
		higher models.EngagementCounts
		lower  models.EngagementCounts
	}{
		{"comments outweigh likes", models.EngagementCounts{Comments: 5}, models.EngagementCounts{Likes: 5}},
		{"shares outweigh comments", models.EngagementCounts{Shares: 5}, models.EngagementCounts{Comments: 5}},
		{"dislikes reduce the score", models.EngagementCounts{Likes: 10}, models.EngagementCounts{Likes: 10, Dislikes: 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hi := scorer.Score(EngagementMetrics{Counts: tc.higher}, created, nil, now)
			lo := scorer.Score(EngagementMetrics{Counts: tc.lower}, created, nil, now)
			if hi <= lo {
				t.Fatalf("want %v > %v", hi, lo)
			}
		})
	}
}

func TestReputationMultiplier(t *testing.T) {
	scorer := NewEngagementScorer()
	now := time.Now()
	metrics := EngagementMetrics{Counts: models.EngagementCounts{Likes: 100}}

	zero, full := 0, 100
	damped := scorer.Score(metrics, now, &zero, now)
	trusted := scorer.Score(metrics, now, &full, now)
	unknown := scorer.Score(metrics, now, nil, now)

	if damped >= trusted {
		t.Fatalf("reputation 0 must damp the score: damped=%v trusted=%v", damped, trusted)
	}
	if damped < trusted*0.49 {
		t.Fatalf("damping must bottom out at 0.5x, never censor: damped=%v trusted=%v", damped, trusted)
	}
	if unknown != trusted {
		t.Fatalf("unknown reputation defaults to %d (multiplier 1.0): unknown=%v trusted=%v",
			models.DefaultReputation, unknown, trusted)
	}
}

func TestCommentEngagementNormalized(t *testing.T) {
	viral := []models.Comment{
		{Counts: models.EngagementCounts{Likes: 1000}},
		{Counts: models.EngagementCounts{}},
	}
	steady := []models.Comment{
		{Counts: models.EngagementCounts{Likes: 40, Agrees: 10}},
		{Counts: models.EngagementCounts{Likes: 50}},
	}

	if got := CommentEngagement(viral); got != 500 {
		t.Fatalf("viral thread: want per-comment average 500, got %v", got)
	}
	if got := CommentEngagement(steady); got != 50 {
		t.Fatalf("steady thread: want per-comment average 50, got %v", got)
	}
	if got := CommentEngagement(nil); got != 0 {
		t.Fatalf("no comments must contribute zero, got %v", got)
	}
}
