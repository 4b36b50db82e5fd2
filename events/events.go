package events

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

// EventType identifies the payload carried by an event envelope.
type EventType string

const (
	// Post lifecycle events.
	PostCreated  EventType = "post.created"
	PostEnriched EventType = "post.enriched"

	// Engagement counter events. One event per recorded interaction;
	// the engagement worker is the single writer folding them into the
	// post document.
	EngagementRecorded EventType = "engagement.recorded"

	// Reputation events from the moderation/reputation collaborator.
	ReputationAdjusted EventType = "reputation.adjusted"
)

// BaseEvent is the common envelope of every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // "api", "enricher", "moderation"
	Version   string    `json:"version"`
}

// GetType returns the event type.
func (e BaseEvent) GetType() EventType {
	return e.Type
}

// PostCreatedEvent is published by the API when a post is stored. The
// enricher worker reacts by rendering the first URL and embedding the
// body.
type PostCreatedEvent struct {
	BaseEvent
	PostID   primitive.ObjectID `json:"post_id"`
	AuthorID primitive.ObjectID `json:"author_id"`
	Body     string             `json:"body"`
}

// PostEnrichedEvent carries the enricher's output back to the
// engagement worker for persistence.
type PostEnrichedEvent struct {
	BaseEvent
	PostID      primitive.ObjectID  `json:"post_id"`
	LinkPreview *models.LinkPreview `json:"link_preview,omitempty"`
	Embedding   []float64           `json:"embedding,omitempty"`
	ModelName   string              `json:"model_name,omitempty"`
}

// EngagementRecordedEvent is published whenever a viewer interaction is
// recorded or withdrawn. Delta is +1 or -1.
type EngagementRecordedEvent struct {
	BaseEvent
	PostID primitive.ObjectID  `json:"post_id"`
	UserID primitive.ObjectID  `json:"user_id,omitempty"`
	Kind   models.ReactionKind `json:"kind"`
	Delta  int64               `json:"delta"`
}

// ReputationAdjustedEvent shifts an author's 0-100 reputation by Delta.
type ReputationAdjustedEvent struct {
	BaseEvent
	UserID primitive.ObjectID `json:"user_id"`
	Delta  int                `json:"delta"`
	Reason string             `json:"reason,omitempty"`
}
