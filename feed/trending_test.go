package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

func TestTrendingRanksByEngagementDescending(t *testing.T) {
	now := time.Now()
	low := testPost(2*time.Hour, 5, now)
	high := testPost(2*time.Hour, 500, now)
	mid := testPost(2*time.Hour, 50, now)

	ranker := NewTrendingRanker(&fakeProvider{posts: []models.Post{low, high, mid}}, nil)
	items, err := ranker.Rank(context.Background(), 24, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("want 3 items, got %d", len(items))
	}
	if items[0].Post.ID != high.ID || items[1].Post.ID != mid.ID || items[2].Post.ID != low.ID {
		t.Fatalf("wrong order: %v %v %v", items[0].Score, items[1].Score, items[2].Score)
	}
}

func TestTrendingIsDeterministic(t *testing.T) {
	now := time.Now()
	provider := testPoolProvider(20, now)
	ranker := NewTrendingRanker(provider, nil)

	a, err := ranker.Rank(context.Background(), 48, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ranker.Rank(context.Background(), 48, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].Post.ID != b[i].Post.ID {
			t.Fatal("trending must not involve sampling randomness")
		}
	}
}

func TestTrendingWindowExcludesOldPosts(t *testing.T) {
	now := time.Now()
	recent := testPost(1*time.Hour, 10, now)
	old := testPost(72*time.Hour, 1000, now)

	ranker := NewTrendingRanker(&fakeProvider{posts: []models.Post{recent, old}}, nil)
	items, err := ranker.Rank(context.Background(), 24, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Post.ID != recent.ID {
		t.Fatalf("only the in-window post belongs in the list, got %d items", len(items))
	}
}

func TestTrendingCommentEngagementBreaksTies(t *testing.T) {
	now := time.Now()
	plain := testPost(2*time.Hour, 10, now)
	discussed := testPost(2*time.Hour, 10, now)
	discussed.Counts.Comments = 2

	provider := &fakeProvider{
		posts: []models.Post{plain, discussed},
		comments: map[string][]models.Comment{
			discussed.ID.Hex(): {
				{Counts: models.EngagementCounts{Likes: 30, Agrees: 10}},
				{Counts: models.EngagementCounts{Likes: 20}},
			},
		},
	}
	ranker := NewTrendingRanker(provider, nil)
	items, err := ranker.Rank(context.Background(), 24, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Post.ID != discussed.ID {
		t.Fatal("comment engagement must lift the discussed post above the plain one")
	}
}

func TestTrendingSourceUnavailable(t *testing.T) {
	ranker := NewTrendingRanker(&fakeProvider{fetchErr: errors.New("no reachable servers")}, nil)
	_, err := ranker.Rank(context.Background(), 24, 10, 0)
	if !IsSourceUnavailable(err) {
		t.Fatalf("want SourceUnavailable, got %v", err)
	}
}

func TestTrendingEmptyWindow(t *testing.T) {
	ranker := NewTrendingRanker(&fakeProvider{}, nil)
	items, err := ranker.Rank(context.Background(), 24, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("empty window must rank to an empty list, got %d", len(items))
	}
}
