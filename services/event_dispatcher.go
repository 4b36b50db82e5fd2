package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/eventbus"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/events"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

// EventDispatcher publishes the API's domain events onto the bus.
type EventDispatcher struct {
	bus    eventbus.EventBus
	source string
}

// NewEventDispatcher builds a dispatcher stamping events with the given
// source name ("api", "enricher", ...).
func NewEventDispatcher(bus eventbus.EventBus, source string) *EventDispatcher {
	return &EventDispatcher{bus: bus, source: source}
}

func (d *EventDispatcher) base(t events.EventType) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      t,
		Timestamp: time.Now(),
		Source:    d.source,
		Version:   "1.0",
	}
}

// PublishPostCreated announces a freshly stored post so the enricher can
// pick it up.
func (d *EventDispatcher) PublishPostCreated(ctx context.Context, post *models.Post) error {
	e := events.PostCreatedEvent{
		BaseEvent: d.base(events.PostCreated),
		PostID:    post.ID,
		AuthorID:  post.AuthorID,
		Body:      post.Body,
	}
	evt, err := eventbus.NewJSONEvent("", e, 0)
	if err != nil {
		return fmt.Errorf("failed to build event: %w", err)
	}
	return d.bus.Publish(ctx, eventbus.TopicPostEvents.Base(), evt)
}

// PublishPostEnriched carries enrichment output to the engagement worker.
func (d *EventDispatcher) PublishPostEnriched(ctx context.Context, postID primitive.ObjectID, preview *models.LinkPreview, embedding []float64, modelName string) error {
	e := events.PostEnrichedEvent{
		BaseEvent:   d.base(events.PostEnriched),
		PostID:      postID,
		LinkPreview: preview,
		Embedding:   embedding,
		ModelName:   modelName,
	}
	evt, err := eventbus.NewJSONEvent("", e, 0)
	if err != nil {
		return fmt.Errorf("failed to build event: %w", err)
	}
	return d.bus.Publish(ctx, eventbus.TopicPostEvents.Base(), evt)
}

// PublishEngagementRecorded announces one recorded (+1) or withdrawn
// (-1) interaction.
func (d *EventDispatcher) PublishEngagementRecorded(ctx context.Context, postID, userID primitive.ObjectID, kind models.ReactionKind, delta int64) error {
	e := events.EngagementRecordedEvent{
		BaseEvent: d.base(events.EngagementRecorded),
		PostID:    postID,
		UserID:    userID,
		Kind:      kind,
		Delta:     delta,
	}
	evt, err := eventbus.NewJSONEvent("", e, 0)
	if err != nil {
		return fmt.Errorf("failed to build event: %w", err)
	}
	return d.bus.Publish(ctx, eventbus.TopicEngagementEvents.Base(), evt)
}

// PublishReputationAdjusted shifts an author's reputation by delta.
func (d *EventDispatcher) PublishReputationAdjusted(ctx context.Context, userID primitive.ObjectID, delta int, reason string) error {
	e := events.ReputationAdjustedEvent{
		BaseEvent: d.base(events.ReputationAdjusted),
		UserID:    userID,
		Delta:     delta,
		Reason:    reason,
	}
	evt, err := eventbus.NewJSONEvent("", e, 0)
	if err != nil {
		return fmt.Errorf("failed to build event: %w", err)
	}
	return d.bus.Publish(ctx, eventbus.TopicReputationEvents.Base(), evt)
}
