package main

import (
	"context"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/events"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/metrics"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/repositories"
)

// eventHandlers applies consumed events to the Mongo documents. This
// worker is the single writer of post counters and reputation scores:
// returning an error sends the event down the retry chain, so handlers
// must stay idempotent-enough for redelivery ($inc on redelivery
// overcounts by one, which the scoring model tolerates).
type eventHandlers struct {
	posts *repositories.PostRepository
	users *repositories.UserRepository
}

func newEventHandlers(posts *repositories.PostRepository, users *repositories.UserRepository) *eventHandlers {
	return &eventHandlers{posts: posts, users: users}
}

func (h *eventHandlers) handleEngagementRecorded(ctx context.Context, e *events.EngagementRecordedEvent) error {
	if err := h.posts.IncrementCounter(ctx, e.PostID, e.Kind, e.Delta); err != nil {
		return err
	}
	metrics.EngagementEventsTotal.WithLabelValues(string(e.Kind)).Inc()
	logger.DebugWithFields("applied engagement event", logger.Fields{
		"post_id": e.PostID.Hex(),
		"kind":    string(e.Kind),
		"delta":   e.Delta,
	})
	return nil
}

func (h *eventHandlers) handlePostEnriched(ctx context.Context, e *events.PostEnrichedEvent) error {
	if err := h.posts.SetEnrichment(ctx, e.PostID, e.LinkPreview, e.Embedding); err != nil {
		return err
	}
	logger.InfoWithFields("applied enrichment", logger.Fields{
		"post_id":     e.PostID.Hex(),
		"has_preview": e.LinkPreview != nil,
		"dimensions":  len(e.Embedding),
		"model":       e.ModelName,
	})
	return nil
}

func (h *eventHandlers) handleReputationAdjusted(ctx context.Context, e *events.ReputationAdjustedEvent) error {
	if err := h.users.AdjustReputation(ctx, e.UserID, e.Delta); err != nil {
		return err
	}
	logger.InfoWithFields("adjusted reputation", logger.Fields{
		"user_id": e.UserID.Hex(),
		"delta":   e.Delta,
		"reason":  e.Reason,
	})
	return nil
}
