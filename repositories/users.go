package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Insert stores a new user and fills in its generated ID.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// FindByID returns a user by ObjectID.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByUsername returns a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ReputationsByIDs returns reputation_score keyed by user id hex. Users
// without a stored reputation get a nil entry so callers can apply the
// default.
func (r *UserRepository) ReputationsByIDs(ctx context.Context, hexIDs []string) (map[string]*int, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, h := range hexIDs {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string]*int{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]*int, len(ids))
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID.Hex()] = u.ReputationScore
	}
	return out, cur.Err()
}

// SetReputation stores an absolute 0-100 reputation score.
func (r *UserRepository) SetReputation(ctx context.Context, userID primitive.ObjectID, score int) error {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	_, err := r.col.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"reputation_score": score, "updated_at": time.Now()},
	})
	return err
}

// AdjustReputation shifts the reputation by delta, clamped to 0-100 via
// a pipeline update so concurrent adjustments stay consistent.
func (r *UserRepository) AdjustReputation(ctx context.Context, userID primitive.ObjectID, delta int) error {
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"reputation_score": bson.M{
				"$max": bson.A{0, bson.M{"$min": bson.A{100, bson.M{
					"$add": bson.A{bson.M{"$ifNull": bson.A{"$reputation_score", models.DefaultReputation}}, delta},
				}}}},
			},
			"updated_at": time.Now(),
		}},
	}
	_, err := r.col.UpdateByID(ctx, userID, pipeline)
	return err
}

// SetInterestVector replaces the viewer-interest embedding.
func (r *UserRepository) SetInterestVector(ctx context.Context, userID primitive.ObjectID, vector []float64) error {
	_, err := r.col.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"interest_vector": vector, "updated_at": time.Now()},
	})
	return err
}
