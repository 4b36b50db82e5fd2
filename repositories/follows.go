package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

type FollowRepository struct {
	col *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{col: db.Collection("follows")}
}

// Upsert creates the follow edge if it does not exist yet. Re-following
// is a no-op thanks to the unique (follower_id, followee_id) index.
func (r *FollowRepository) Upsert(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	filter := bson.M{"follower_id": followerID, "followee_id": followeeID}
	update := bson.M{"$setOnInsert": bson.M{
		"follower_id": followerID,
		"followee_id": followeeID,
		"created_at":  time.Now(),
	}}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Delete removes the follow edge.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"follower_id": followerID, "followee_id": followeeID})
	return err
}

// FolloweesOf returns the set of followee id hexes of one follower, the
// shape the feed engine consumes for relationship scoring.
func (r *FollowRepository) FolloweesOf(ctx context.Context, followerID primitive.ObjectID) (map[string]struct{}, error) {
	cur, err := r.col.Find(ctx, bson.M{"follower_id": followerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]struct{}{}
	for cur.Next(ctx) {
		var f models.Follow
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		out[f.FolloweeID.Hex()] = struct{}{}
	}
	return out, cur.Err()
}
