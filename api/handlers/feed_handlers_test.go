package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/dto"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/feed"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/services"
)

type stubProvider struct {
	posts []models.Post
}

func (s *stubProvider) CandidatePosts(ctx context.Context, filter feed.CandidateFilter) ([]models.Post, error) {
	return s.posts, nil
}

func (s *stubProvider) AuthorReputations(ctx context.Context, authorIDs []string) (map[string]*int, error) {
	return map[string]*int{}, nil
}

func (s *stubProvider) ViewerFollowing(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

func (s *stubProvider) ViewerLikes(ctx context.Context, viewerID string, postIDs []string) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

func (s *stubProvider) CommentsForPosts(ctx context.Context, postIDs []string) (map[string][]models.Comment, error) {
	return map[string][]models.Comment{}, nil
}

func stubPosts(n int) []models.Post {
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
			CreatedAt:   time.Now().Add(-time.Duration(i) * time.Hour),
		})
	}
	return posts
}

func newFeedRouter(provider feed.DataProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/feed", GetFeedHandler(services.NewFeedService(provider)))
	return r
}

func TestGetFeedHandlerReturnsPage(t *testing.T) {
	r := newFeedRouter(&stubProvider{posts: stubPosts(30)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?limit=10&seed=42", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.FeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Posts, 10)
	assert.Equal(t, feed.AlgorithmProbabilityCloud, resp.Algorithm)
	assert.True(t, resp.Stats.Seeded)
}

func TestGetFeedHandlerRejectsUnknownWeightKey(t *testing.T) {
	r := newFeedRouter(&stubProvider{posts: stubPosts(5)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?w.virality=0.9", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "virality")
}

func TestGetFeedHandlerRejectsNonNumericWeight(t *testing.T) {
	r := newFeedRouter(&stubProvider{posts: stubPosts(5)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?w.recency=high", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFeedHandlerRejectsBadSeed(t *testing.T) {
	r := newFeedRouter(&stubProvider{posts: stubPosts(5)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?seed=abc", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseWeightOverrides(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/feed?w.recency=0.5&w.randomness=0&limit=10", nil)

	overrides, err := parseWeightOverrides(c)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"recency": 0.5, "randomness": 0}, overrides)
}

func TestParseWeightOverridesEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/feed?limit=10", nil)

	overrides, err := parseWeightOverrides(c)
	require.NoError(t, err)
	assert.Nil(t, overrides)
}
