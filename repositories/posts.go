package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

// Insert stores a new post and fills in its generated ID.
func (r *PostRepository) Insert(ctx context.Context, p *models.Post) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// FindByID returns a post by its ObjectID.
func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CandidateOptions narrows a candidate pool scan.
type CandidateOptions struct {
	Limit         int
	Since         time.Time
	PoliticalOnly bool
	Tags          []string
}

// FindCandidates returns up to opts.Limit feed-visible posts, newest
// first. This is the feed engine's pool fetch; it intentionally never
// sorts by counters so ordering stays the sampler's job.
func (r *PostRepository) FindCandidates(ctx context.Context, opts CandidateOptions) ([]models.Post, error) {
	filter := bson.M{"feed_visible": true}
	if !opts.Since.IsZero() {
		filter["created_at"] = bson.M{"$gte": opts.Since}
	}
	if opts.PoliticalOnly {
		filter["is_political"] = true
	}
	if len(opts.Tags) > 0 {
		filter["tags"] = bson.M{"$in": opts.Tags}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}

	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// counterField maps a reaction kind to its counter field on the post
// document.
func counterField(kind models.ReactionKind) (string, error) {
	switch kind {
	case models.ReactionLike:
		return "counts.likes", nil
	case models.ReactionDislike:
		return "counts.dislikes", nil
	case models.ReactionAgree:
		return "counts.agrees", nil
	case models.ReactionDisagree:
		return "counts.disagrees", nil
	case models.ReactionShare:
		return "counts.shares", nil
	case models.ReactionView:
		return "counts.views", nil
	case models.ReactionReport:
		return "counts.reports", nil
	}
	return "", fmt.Errorf("no counter for reaction kind %q", kind)
}

// IncrementCounter adjusts one engagement counter by delta. This $inc
// (applied by the engagement worker) is the only write path to counters;
// the feed engine never touches them.
func (r *PostRepository) IncrementCounter(ctx context.Context, postID primitive.ObjectID, kind models.ReactionKind, delta int64) error {
	field, err := counterField(kind)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateByID(ctx, postID, bson.M{
		"$inc": bson.M{field: delta},
		"$set": bson.M{"updated_at": time.Now()},
	})
	return err
}

// IncrementCommentCount adjusts the comment counter by delta.
func (r *PostRepository) IncrementCommentCount(ctx context.Context, postID primitive.ObjectID, delta int64) error {
	_, err := r.col.UpdateByID(ctx, postID, bson.M{
		"$inc": bson.M{"counts.comments": delta},
		"$set": bson.M{"updated_at": time.Now()},
	})
	return err
}

// SetEnrichment stores the enricher worker's output: the link preview
// (nil when the post carries no URL) and the body embedding.
func (r *PostRepository) SetEnrichment(ctx context.Context, postID primitive.ObjectID, preview *models.LinkPreview, embedding []float64) error {
	set := bson.M{"updated_at": time.Now()}
	if preview != nil {
		set["link_preview"] = preview
	}
	if len(embedding) > 0 {
		set["embedding"] = embedding
	}
	_, err := r.col.UpdateByID(ctx, postID, bson.M{"$set": set})
	return err
}

// SetFeedVisible toggles the visibility flag.
func (r *PostRepository) SetFeedVisible(ctx context.Context, postID primitive.ObjectID, visible bool) error {
	_, err := r.col.UpdateByID(ctx, postID, bson.M{
		"$set": bson.M{"feed_visible": visible, "updated_at": time.Now()},
	})
	return err
}
