package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxAuthorBadges caps the badge list carried on author snapshots.
const MaxAuthorBadges = 5

// Post represents a content item document.
// Collection: posts
//
// Counters are only ever written by the engagement worker via $inc; the
// feed engine treats them as read-only inputs.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
	AuthorID    primitive.ObjectID `bson:"author_id" json:"author_id"`
	Author      AuthorSnapshot     `bson:"author" json:"author"`
	Body        string             `bson:"body" json:"body"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	IsPolitical bool               `bson:"is_political" json:"is_political"`
	FeedVisible bool               `bson:"feed_visible" json:"feed_visible"`
	Counts      EngagementCounts   `bson:"counts" json:"counts"`
	LinkPreview *LinkPreview       `bson:"link_preview,omitempty" json:"link_preview,omitempty"`
	Embedding   []float64          `bson:"embedding,omitempty" json:"-"`
}

// EngagementCounts holds the raw interaction counters of a post.
// Missing counters decode to zero.
type EngagementCounts struct {
	Likes          int64 `bson:"likes" json:"likes"`
	Dislikes       int64 `bson:"dislikes" json:"dislikes"`
	Agrees         int64 `bson:"agrees" json:"agrees"`
	Disagrees      int64 `bson:"disagrees" json:"disagrees"`
	Comments       int64 `bson:"comments" json:"comments"`
	Shares         int64 `bson:"shares" json:"shares"`
	Views          int64 `bson:"views" json:"views"`
	CommunityNotes int64 `bson:"community_notes" json:"community_notes"`
	Reports        int64 `bson:"reports" json:"reports"`
}

// AuthorSnapshot is the denormalized author info attached to each post at
// write time so feed reads never join the users collection for display
// fields. Reputation is intentionally NOT part of the snapshot: it changes
// independently and is resolved through the users collection at scoring
// time.
type AuthorSnapshot struct {
	ID          primitive.ObjectID `bson:"id" json:"id"`
	Username    string             `bson:"username" json:"username"`
	DisplayName string             `bson:"display_name" json:"display_name"`
	AvatarURL   string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Verified    bool               `bson:"verified" json:"verified"`
	Badges      []string           `bson:"badges,omitempty" json:"badges,omitempty"`
}

// LinkPreview is the rendered snapshot of the first URL found in a post
// body, produced by the enricher worker.
type LinkPreview struct {
	URL       string    `bson:"url" json:"url"`
	Title     string    `bson:"title" json:"title"`
	SiteName  string    `bson:"site_name,omitempty" json:"site_name,omitempty"`
	Excerpt   string    `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	ImageURL  string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	FetchedAt time.Time `bson:"fetched_at" json:"fetched_at"`
}
