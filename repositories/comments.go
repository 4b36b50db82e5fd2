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

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection("comments")}
}

// Insert stores a new comment and fills in its generated ID.
func (r *CommentRepository) Insert(ctx context.Context, c *models.Comment) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// ByPost returns a post's comments, newest first.
func (r *CommentRepository) ByPost(ctx context.Context, postID primitive.ObjectID, limit int) ([]models.Comment, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, bson.M{"post_id": postID}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ByPostIDs returns the comments of many posts keyed by post id hex,
// the batch shape the trending scorer consumes.
func (r *CommentRepository) ByPostIDs(ctx context.Context, postHexIDs []string) (map[string][]models.Comment, error) {
	ids := make([]primitive.ObjectID, 0, len(postHexIDs))
	for _, h := range postHexIDs {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string][]models.Comment{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"post_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string][]models.Comment{}
	for cur.Next(ctx) {
		var c models.Comment
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		key := c.PostID.Hex()
		out[key] = append(out[key], c)
	}
	return out, cur.Err()
}
