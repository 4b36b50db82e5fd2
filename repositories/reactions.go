package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

type ReactionRepository struct {
	col *mongo.Collection
}

func NewReactionRepository(db *mongo.Database) *ReactionRepository {
	return &ReactionRepository{col: db.Collection("reactions")}
}

// Insert records a toggle-style reaction. The unique (user_id, post_id,
// kind) index rejects duplicates; callers translate that into "already
// reacted". Repeatable kinds (views, shares) are counted on the post
// document only and never stored here.
func (r *ReactionRepository) Insert(ctx context.Context, reaction *models.Reaction) error {
	if reaction.CreatedAt.IsZero() {
		reaction.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, reaction)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		reaction.ID = oid
	}
	return nil
}

// IsDuplicate reports whether err is the unique-index violation raised
// by a repeated toggle reaction.
func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// Delete removes a toggle reaction. Returns the number of documents
// removed (0 when the reaction never existed).
func (r *ReactionRepository) Delete(ctx context.Context, userID, postID primitive.ObjectID, kind models.ReactionKind) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID, "post_id": postID, "kind": kind})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// LikedPostIDs returns which of the given posts the user has liked,
// keyed by post id hex. This backs the feed page's is_liked annotation
// and is only ever called with one page of ids.
func (r *ReactionRepository) LikedPostIDs(ctx context.Context, userID primitive.ObjectID, postHexIDs []string) (map[string]struct{}, error) {
	ids := make([]primitive.ObjectID, 0, len(postHexIDs))
	for _, h := range postHexIDs {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string]struct{}{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{
		"user_id": userID,
		"post_id": bson.M{"$in": ids},
		"kind":    models.ReactionLike,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]struct{}{}
	for cur.Next(ctx) {
		var reaction models.Reaction
		if err := cur.Decode(&reaction); err != nil {
			return nil, err
		}
		out[reaction.PostID.Hex()] = struct{}{}
	}
	return out, cur.Err()
}
