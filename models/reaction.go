package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReactionKind enumerates the interaction kinds a viewer can record
// against a post. Each kind maps 1:1 to a counter on the post document.
type ReactionKind string

const (
	ReactionLike     ReactionKind = "like"
	ReactionDislike  ReactionKind = "dislike"
	ReactionAgree    ReactionKind = "agree"
	ReactionDisagree ReactionKind = "disagree"
	ReactionShare    ReactionKind = "share"
	ReactionView     ReactionKind = "view"
	ReactionReport   ReactionKind = "report"
)

// ValidReactionKind reports whether k is a known kind.
func ValidReactionKind(k ReactionKind) bool {
	switch k {
	case ReactionLike, ReactionDislike, ReactionAgree, ReactionDisagree,
		ReactionShare, ReactionView, ReactionReport:
		return true
	}
	return false
}

// Repeatable reports whether the kind may be recorded more than once per
// (user, post). Views and shares accumulate; the rest are toggles backed
// by a unique index.
func (k ReactionKind) Repeatable() bool {
	return k == ReactionView || k == ReactionShare
}

// Reaction represents one viewer interaction with a post.
// Collection: reactions, unique index on (user_id, post_id, kind) for
// non-repeatable kinds.
type Reaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id,omitempty" json:"user_id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"post_id"`
	Kind      ReactionKind       `bson:"kind" json:"kind"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
