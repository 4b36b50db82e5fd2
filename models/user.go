package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultReputation is assumed for users whose reputation is unknown.
const DefaultReputation = 70

// User represents an account document.
// Collection: users
//
// ReputationScore is maintained by the moderation/reputation collaborator
// through reputation events; nil means "never scored" and readers fall
// back to DefaultReputation.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
	Username       string             `bson:"username" json:"username"`
	DisplayName    string             `bson:"display_name" json:"display_name"`
	AvatarURL      string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Verified       bool               `bson:"verified" json:"verified"`
	Badges         []string           `bson:"badges,omitempty" json:"badges,omitempty"`
	ReputationScore *int              `bson:"reputation_score,omitempty" json:"reputation_score,omitempty"`
	InterestVector []float64          `bson:"interest_vector,omitempty" json:"-"`
}

// Snapshot builds the denormalized author info stored on posts.
func (u User) Snapshot() AuthorSnapshot {
	badges := u.Badges
	if len(badges) > MaxAuthorBadges {
		badges = badges[:MaxAuthorBadges]
	}
	return AuthorSnapshot{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Verified:    u.Verified,
		Badges:      badges,
	}
}
