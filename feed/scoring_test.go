package feed

import (
	"math/rand"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

func postByAuthor(authorID primitive.ObjectID, age time.Duration, now time.Time) models.Post {
	return models.Post{
		ID:        primitive.NewObjectID(),
		AuthorID:  authorID,
		Author:    models.AuthorSnapshot{ID: authorID},
		CreatedAt: now.Add(-age),
	}
}

func TestMassConservation(t *testing.T) {
	// Whenever at least one item has a non-zero factor score, the total
	// assigned mass must be positive.
	now := time.Now()
	author := primitive.NewObjectID()
	rng := rand.New(rand.NewSource(1))
	weights := DefaultScoringWeights()

	var total float64
	for i := 0; i < 10; i++ {
		c := scoreCandidate(postByAuthor(author, time.Duration(i)*time.Hour, now), ViewerContext{}, weights, nil, 18, now, rng)
		total += c.Mass
	}
	if total <= 0 {
		t.Fatalf("total mass must be positive, got %v", total)
	}
}

func TestRelationshipBoost(t *testing.T) {
	// Holding every other factor equal, a followed author's post must
	// carry at least the mass of an identical unfollowed one, for any
	// configuration with relationship weight > 0. Randomness is zeroed
	// out via the weight so the comparison is exact.
	now := time.Now()
	followed := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	viewer := ViewerContext{
		UserID:    primitive.NewObjectID().Hex(),
		Following: map[string]struct{}{followed.Hex(): {}},
	}

	configs := []ScoringWeights{
		DefaultScoringWeights(),
		{Relationship: 1},
		{Recency: 0.5, Relationship: 0.01},
	}
	for _, weights := range configs {
		weights.Randomness = 0
		rng := rand.New(rand.NewSource(9))

		a := scoreCandidate(postByAuthor(followed, time.Hour, now), viewer, weights, nil, 18, now, rng)
		b := scoreCandidate(postByAuthor(stranger, time.Hour, now), viewer, weights, nil, 18, now, rng)
		if a.Mass < b.Mass {
			t.Fatalf("weights %+v: followed mass %v < unfollowed mass %v", weights, a.Mass, b.Mass)
		}
	}
}

func TestRecencyScoreBounds(t *testing.T) {
	now := time.Now()
	if got := recencyScore(now, 18, now); got != 1 {
		t.Fatalf("zero age must score 1.0, got %v", got)
	}
	if got := recencyScore(now.Add(-18*time.Hour), 18, now); got < 0.499 || got > 0.501 {
		t.Fatalf("one half-life must score 0.5, got %v", got)
	}
	if got := recencyScore(now.Add(time.Hour), 18, now); got != 1 {
		t.Fatalf("future timestamps clamp to zero age, got %v", got)
	}
}

func TestTopicSimilarityScore(t *testing.T) {
	if got := topicSimilarityScore(nil, []float64{1, 0}); got != 0 {
		t.Fatalf("missing embedding must score 0, got %v", got)
	}
	if got := topicSimilarityScore([]float64{1, 0}, []float64{1, 0}); got < 0.999 {
		t.Fatalf("identical vectors must score ~1, got %v", got)
	}
	if got := topicSimilarityScore([]float64{1, 0}, []float64{-1, 0}); got > 0.001 {
		t.Fatalf("opposite vectors must score ~0, got %v", got)
	}
	if got := topicSimilarityScore([]float64{1, 0}, []float64{0, 1}); got < 0.499 || got > 0.501 {
		t.Fatalf("orthogonal vectors must score 0.5, got %v", got)
	}
}

func TestReputationScoreDefaults(t *testing.T) {
	if got := reputationScore(nil); got != 0.7 {
		t.Fatalf("unknown reputation must score 0.7, got %v", got)
	}
	high := 150
	if got := reputationScore(&high); got != 1 {
		t.Fatalf("reputation above 100 clamps to 1.0, got %v", got)
	}
}
