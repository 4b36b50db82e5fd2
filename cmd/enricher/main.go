package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/cmd/enricher/quota"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/config"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/embeddings"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/eventbus"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/events"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/preview"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/services"
)

// The enricher consumes post.created events and produces the slow
// artifacts: a link preview for the first URL in the body and the body
// embedding. Results go back onto the post topic as post.enriched; the
// engagement worker persists them.
func main() {
	config.InitApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	brokers := eventbus.GetBrokers()
	if err := eventbus.EnsureTopics(brokers, eventbus.TopicPostEvents, 3); err != nil {
		logger.Log.Errorf("failed to ensure eventbus topics: %v", err)
	}

	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	dispatcher := services.NewEventDispatcher(bus, "enricher")
	quotaLimiter := quota.NewEmbeddingQuotaLimiterFromConfig(config.GetConfig())
	enricher := &enricher{dispatcher: dispatcher, quota: quotaLimiter}

	groupID := eventbus.GetGroupID() + "-enricher"

	subscribeRunner := func() error {
		return bus.Subscribe(ctx, groupID, eventbus.TopicPostEvents, func(ctx context.Context, ev eventbus.Event) error {
			var peek struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(ev.Payload, &peek); err != nil {
				return err
			}
			switch events.EventType(peek.Type) {
			case events.PostCreated:
				v, err := eventbus.DecodeJSON[events.PostCreatedEvent](ev)
				if err != nil {
					return err
				}
				return enricher.handlePostCreated(ctx, &v)
			default:
				// post.enriched comes back on this topic; ignore it here.
				return nil
			}
		})
	}

	logger.Log.Info("starting enricher service with eventbus...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := subscribeRunner(); err != nil && err != context.Canceled {
			logger.Log.Errorf("eventbus subscribe error: %v", err)
		}
	}()

	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down enricher service...")

	cancel()
	wg.Wait()

	logger.Log.Info("enricher service stopped")
}

type enricher struct {
	dispatcher *services.EventDispatcher
	quota      *quota.EmbeddingQuotaLimiter
}

// handlePostCreated builds the preview and embedding for one post.
// Preview failures are non-fatal: a post whose link cannot be rendered
// still gets its embedding. Only a failed publish returns an error and
// re-enters the retry chain.
func (e *enricher) handlePostCreated(ctx context.Context, ev *events.PostCreatedEvent) error {
	var linkPreview *models.LinkPreview
	if pageURL := preview.FirstURL(ev.Body); pageURL != "" {
		p, err := preview.Build(ctx, pageURL)
		if err != nil {
			logger.WarnWithFields("link preview failed", logger.Fields{
				"post_id": ev.PostID.Hex(),
				"url":     pageURL,
				"error":   err.Error(),
			})
		} else {
			linkPreview = p
		}
	}

	var embedding []float64
	modelName := ""
	allowed, err := e.quota.WaitAndReserve(ctx)
	if err != nil {
		return err
	}
	if allowed {
		vec, err := embeddings.EmbedText(ctx, ev.Body)
		if err != nil {
			logger.WarnWithFields("embedding failed", logger.Fields{
				"post_id": ev.PostID.Hex(),
				"error":   err.Error(),
			})
		} else {
			embedding = vec
			modelName = embeddings.ModelName()
		}
	} else {
		logger.WarnWithFields("embedding quota exhausted, skipping", logger.Fields{
			"post_id": ev.PostID.Hex(),
		})
	}

	if linkPreview == nil && len(embedding) == 0 {
		// Nothing to persist; commit without emitting an event.
		return nil
	}
	return e.dispatcher.PublishPostEnriched(ctx, ev.PostID, linkPreview, embedding, modelName)
}
