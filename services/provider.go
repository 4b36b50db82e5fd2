package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/feed"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/repositories"
)

// MongoProvider adapts the Mongo repositories onto the feed engine's
// DataProvider interface.
type MongoProvider struct {
	posts     *repositories.PostRepository
	users     *repositories.UserRepository
	follows   *repositories.FollowRepository
	reactions *repositories.ReactionRepository
	comments  *repositories.CommentRepository
}

func NewMongoProvider(
	posts *repositories.PostRepository,
	users *repositories.UserRepository,
	follows *repositories.FollowRepository,
	reactions *repositories.ReactionRepository,
	comments *repositories.CommentRepository,
) *MongoProvider {
	return &MongoProvider{
		posts:     posts,
		users:     users,
		follows:   follows,
		reactions: reactions,
		comments:  comments,
	}
}

func (p *MongoProvider) CandidatePosts(ctx context.Context, filter feed.CandidateFilter) ([]models.Post, error) {
	return p.posts.FindCandidates(ctx, repositories.CandidateOptions{
		Limit:         filter.Limit,
		Since:         filter.Since,
		PoliticalOnly: filter.PoliticalOnly,
		Tags:          filter.Tags,
	})
}

func (p *MongoProvider) AuthorReputations(ctx context.Context, authorIDs []string) (map[string]*int, error) {
	return p.users.ReputationsByIDs(ctx, authorIDs)
}

func (p *MongoProvider) ViewerFollowing(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	id, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return map[string]struct{}{}, nil
	}
	return p.follows.FolloweesOf(ctx, id)
}

func (p *MongoProvider) ViewerLikes(ctx context.Context, viewerID string, postIDs []string) (map[string]struct{}, error) {
	id, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return map[string]struct{}{}, nil
	}
	return p.reactions.LikedPostIDs(ctx, id, postIDs)
}

func (p *MongoProvider) CommentsForPosts(ctx context.Context, postIDs []string) (map[string][]models.Comment, error) {
	return p.comments.ByPostIDs(ctx, postIDs)
}
