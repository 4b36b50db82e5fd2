package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/feed"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

type stubFeedProvider struct {
	posts    []models.Post
	fetchErr error
}

func (s *stubFeedProvider) CandidatePosts(ctx context.Context, filter feed.CandidateFilter) ([]models.Post, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if filter.Limit < len(s.posts) {
		return s.posts[:filter.Limit], nil
	}
	return s.posts, nil
}

func (s *stubFeedProvider) AuthorReputations(ctx context.Context, authorIDs []string) (map[string]*int, error) {
	return map[string]*int{}, nil
}

func (s *stubFeedProvider) ViewerFollowing(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

func (s *stubFeedProvider) ViewerLikes(ctx context.Context, viewerID string, postIDs []string) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

func (s *stubFeedProvider) CommentsForPosts(ctx context.Context, postIDs []string) (map[string][]models.Comment, error) {
	return map[string][]models.Comment{}, nil
}

func makePosts(n int) []models.Post {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, models.Post{
			ID: primitive.NewObjectID(),
			Author: models.AuthorSnapshot{
				ID:       primitive.NewObjectID(),
				Username: "resident",
			},
			Body:        "a civic post",
			FeedVisible: true,
			CreatedAt:   time.Now().Add(-time.Duration(i) * time.Minute),
		})
	}
	return posts
}

func TestFeedServiceCapsPageSize(t *testing.T) {
	svc := NewFeedService(&stubFeedProvider{posts: makePosts(400)})

	seed := int64(7)
	resp, err := svc.Generate(context.Background(), FeedRequest{Limit: 500, Seed: &seed})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(resp.Posts), maxPageSize)
}

func TestFeedServiceDegradesOnSourceFailure(t *testing.T) {
	svc := NewFeedService(&stubFeedProvider{fetchErr: errors.New("mongo down")})

	resp, err := svc.Generate(context.Background(), FeedRequest{Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, resp.Posts)
	assert.Equal(t, "feed temporarily degraded", resp.Note)
}

func TestFeedServicePropagatesWeightRejection(t *testing.T) {
	svc := NewFeedService(&stubFeedProvider{posts: makePosts(10)})

	_, err := svc.Generate(context.Background(), FeedRequest{
		Limit:           10,
		WeightOverrides: map[string]float64{"virality": 0.9},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, feed.ErrUnknownWeightKey)
}

func TestTrendingServiceDegradesOnSourceFailure(t *testing.T) {
	svc := NewTrendingService(&stubFeedProvider{fetchErr: errors.New("mongo down")})

	resp, err := svc.Trending(context.Background(), 24, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Posts)
	assert.Equal(t, "trending temporarily degraded", resp.Note)
}

func TestTrendingServiceClampsWindow(t *testing.T) {
	svc := NewTrendingService(&stubFeedProvider{posts: makePosts(5)})

	resp, err := svc.Trending(context.Background(), 10000, 20, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, resp.WindowHours, 168)
}
