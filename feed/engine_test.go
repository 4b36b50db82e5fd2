package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

// fakeProvider is an in-memory DataProvider for engine tests.
type fakeProvider struct {
	posts       []models.Post
	reputations map[string]*int
	following   map[string]struct{}
	likes       map[string]struct{}
	comments    map[string][]models.Comment

	fetchErr     error
	followingErr error
	likesErr     error
}

func (f *fakeProvider) CandidatePosts(_ context.Context, filter CandidateFilter) ([]models.Post, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		if !filter.Since.IsZero() && p.CreatedAt.Before(filter.Since) {
			continue
		}
		out = append(out, p)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProvider) AuthorReputations(_ context.Context, _ []string) (map[string]*int, error) {
	return f.reputations, nil
}

func (f *fakeProvider) ViewerFollowing(_ context.Context, _ string) (map[string]struct{}, error) {
	if f.followingErr != nil {
		return nil, f.followingErr
	}
	return f.following, nil
}

func (f *fakeProvider) ViewerLikes(_ context.Context, _ string, _ []string) (map[string]struct{}, error) {
	if f.likesErr != nil {
		return nil, f.likesErr
	}
	return f.likes, nil
}

func (f *fakeProvider) CommentsForPosts(_ context.Context, _ []string) (map[string][]models.Comment, error) {
	return f.comments, nil
}

func testPost(age time.Duration, likes int64, now time.Time) models.Post {
	author := primitive.NewObjectID()
	return models.Post{
		ID:        primitive.NewObjectID(),
		AuthorID:  author,
		Author:    models.AuthorSnapshot{ID: author},
		CreatedAt: now.Add(-age),
		Counts:    models.EngagementCounts{Likes: likes},
	}
}

func testPoolProvider(n int, now time.Time) *fakeProvider {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = testPost(time.Duration(i+1)*time.Hour, int64(i), now)
	}
	return &fakeProvider{posts: posts}
}

func orderingOf(result *Result) []string {
	ids := make([]string, len(result.Items))
	for i, it := range result.Items {
		ids[i] = it.Post.ID.Hex()
	}
	return ids
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	now := time.Now()
	provider := testPoolProvider(30, now)
	engine := NewEngine(provider, Config{})
	seed := int64(42)

	viewer := ViewerContext{}
	a, err := engine.Generate(context.Background(), viewer, Options{Limit: 10, Seed: &seed})
	if err != nil {
		t.Fatal(err)
	}
	b, err := engine.Generate(context.Background(), viewer, Options{Limit: 10, Seed: &seed})
	if err != nil {
		t.Fatal(err)
	}

	ao, bo := orderingOf(a), orderingOf(b)
	if len(ao) != len(bo) {
		t.Fatalf("lengths differ: %d vs %d", len(ao), len(bo))
	}
	for i := range ao {
		if ao[i] != bo[i] {
			t.Fatalf("seeded generations must be identical, diverged at %d: %v vs %v", i, ao, bo)
		}
	}
	if !a.Stats.Seeded {
		t.Fatal("stats must report the generation as seeded")
	}
}

func TestGenerateVariesWithoutSeed(t *testing.T) {
	// Statistical: over many unseeded calls on the same inputs, at least
	// one ordering must differ from the first.
	now := time.Now()
	provider := testPoolProvider(20, now)
	engine := NewEngine(provider, Config{})

	first, err := engine.Generate(context.Background(), ViewerContext{}, Options{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	firstIDs := orderingOf(first)

	for trial := 0; trial < 50; trial++ {
		result, err := engine.Generate(context.Background(), ViewerContext{}, Options{Limit: 10})
		if err != nil {
			t.Fatal(err)
		}
		ids := orderingOf(result)
		for i := range ids {
			if ids[i] != firstIDs[i] {
				return // observed variation
			}
		}
	}
	t.Fatal("50 unseeded generations produced identical orderings")
}

func TestGeneratePaginationBound(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name       string
		pool       int
		limit      int
		offset     int
		wantLength int
	}{
		{"full page", 100, 20, 0, 20},
		{"offset page", 100, 20, 30, 20},
		{"pool smaller than limit", 5, 20, 0, 5},
		{"offset past pool", 5, 20, 10, 0},
		{"empty pool", 0, 20, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := NewEngine(testPoolProvider(tc.pool, now), Config{})
			result, err := engine.Generate(context.Background(), ViewerContext{}, Options{Limit: tc.limit, Offset: tc.offset})
			if err != nil {
				t.Fatal(err)
			}
			if len(result.Items) != tc.wantLength {
				t.Fatalf("want %d items, got %d", tc.wantLength, len(result.Items))
			}
			if result.Stats.Returned != tc.wantLength {
				t.Fatalf("stats.Returned=%d, want %d", result.Stats.Returned, tc.wantLength)
			}
		})
	}
}

func TestGenerateSourceUnavailable(t *testing.T) {
	engine := NewEngine(&fakeProvider{fetchErr: errors.New("connection refused")}, Config{})
	_, err := engine.Generate(context.Background(), ViewerContext{}, Options{Limit: 10})
	if !IsSourceUnavailable(err) {
		t.Fatalf("pool fetch failure must surface as SourceUnavailable, got %v", err)
	}
}

func TestGenerateRejectsUnknownWeightOverride(t *testing.T) {
	engine := NewEngine(testPoolProvider(10, time.Now()), Config{})
	viewer := ViewerContext{WeightOverrides: map[string]float64{"virality": 1}}
	_, err := engine.Generate(context.Background(), viewer, Options{Limit: 10})
	if !errors.Is(err, ErrUnknownWeightKey) {
		t.Fatalf("unknown override key must be rejected before sampling, got %v", err)
	}
}

func TestGenerateSkipsMalformedItems(t *testing.T) {
	// One malformed item (no author snapshot) must not abort the batch.
	now := time.Now()
	provider := testPoolProvider(5, now)
	provider.posts = append(provider.posts, models.Post{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
	})
	engine := NewEngine(provider, Config{})

	result, err := engine.Generate(context.Background(), ViewerContext{}, Options{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if result.Stats.PoolSize != 6 || result.Stats.Considered != 5 {
		t.Fatalf("want pool 6 considered 5, got %+v", result.Stats)
	}
	if len(result.Items) != 5 {
		t.Fatalf("want the 5 well-formed items, got %d", len(result.Items))
	}
}

func TestGenerateAnnotatesLikes(t *testing.T) {
	now := time.Now()
	provider := testPoolProvider(3, now)
	likedID := provider.posts[1].ID.Hex()
	provider.likes = map[string]struct{}{likedID: {}}
	engine := NewEngine(provider, Config{})

	viewer := ViewerContext{UserID: primitive.NewObjectID().Hex(), Following: map[string]struct{}{}}
	result, err := engine.Generate(context.Background(), viewer, Options{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range result.Items {
		if want := it.Post.ID.Hex() == likedID; it.IsLiked != want {
			t.Fatalf("post %s: is_liked=%v, want %v", it.Post.ID.Hex(), it.IsLiked, want)
		}
	}
}

func TestGenerateDegradesOnFollowingLookupFailure(t *testing.T) {
	now := time.Now()
	provider := testPoolProvider(5, now)
	provider.followingErr = errors.New("timeout")
	engine := NewEngine(provider, Config{})

	viewer := ViewerContext{UserID: primitive.NewObjectID().Hex()}
	result, err := engine.Generate(context.Background(), viewer, Options{Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 5 {
		t.Fatalf("a following lookup failure must not fail the feed, got %d items", len(result.Items))
	}
}

func TestGenerateFreshFollowedBeatsStalePopular(t *testing.T) {
	// Regression guard against an accidental pure-popularity sort: in a
	// pool of 5, a fresh post from a followed author must land in the
	// top 3 in at least 80% of 1000 trials under default weights, even
	// against a month-old post with 100x the likes.
	now := time.Now()
	followedAuthor := primitive.NewObjectID()
	freshFollowed := models.Post{
		ID:        primitive.NewObjectID(),
		AuthorID:  followedAuthor,
		Author:    models.AuthorSnapshot{ID: followedAuthor},
		CreatedAt: now.Add(-1 * time.Hour),
		Counts:    models.EngagementCounts{Likes: 10},
	}
	stalePopular := testPost(30*24*time.Hour, 1000, now)

	provider := &fakeProvider{posts: []models.Post{
		freshFollowed,
		stalePopular,
		testPost(20*time.Hour, 50, now),
		testPost(40*time.Hour, 30, now),
		testPost(60*time.Hour, 80, now),
	}}
	engine := NewEngine(provider, Config{})
	viewer := ViewerContext{
		UserID:    primitive.NewObjectID().Hex(),
		Following: map[string]struct{}{followedAuthor.Hex(): {}},
	}

	const trials = 1000
	top3 := 0
	for i := 0; i < trials; i++ {
		seed := int64(i)
		result, err := engine.Generate(context.Background(), viewer, Options{Limit: 5, Seed: &seed})
		if err != nil {
			t.Fatal(err)
		}
		for pos := 0; pos < 3 && pos < len(result.Items); pos++ {
			if result.Items[pos].Post.ID == freshFollowed.ID {
				top3++
				break
			}
		}
	}
	if top3 < trials*80/100 {
		t.Fatalf("fresh+followed post reached top 3 in only %d/%d trials", top3, trials)
	}
}
