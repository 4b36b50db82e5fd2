package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment document.
// Collection: comments
//
// Only the like/dislike/agree/disagree counters are used; they feed the
// commentEngagement sub-score of the engagement scorer.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"post_id"`
	AuthorID  primitive.ObjectID `bson:"author_id" json:"author_id"`
	Body      string             `bson:"body" json:"body"`
	Counts    EngagementCounts   `bson:"counts" json:"counts"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
