package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/config"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/db"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/eventbus"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/events"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/repositories"
)

// The engagement worker is the only process that writes post counters
// and reputation scores. It consumes the engagement, post and
// reputation topics and applies each event to Mongo.
func main() {
	config.InitApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}

	brokers := eventbus.GetBrokers()
	for _, t := range eventbus.AllTopics {
		if err := eventbus.EnsureTopics(brokers, t, 3); err != nil {
			logger.Log.Errorf("failed to ensure eventbus topics for %s: %v", t.Base(), err)
		}
	}

	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	database := db.Database()
	handlers := newEventHandlers(
		repositories.NewPostRepository(database),
		repositories.NewUserRepository(database),
	)

	groupID := eventbus.GetGroupID() + "-engagement"

	runners := []func() error{
		func() error {
			return bus.Subscribe(ctx, groupID, eventbus.TopicEngagementEvents, func(ctx context.Context, ev eventbus.Event) error {
				switch peekType(ev) {
				case events.EngagementRecorded:
					v, err := eventbus.DecodeJSON[events.EngagementRecordedEvent](ev)
					if err != nil {
						return err
					}
					return handlers.handleEngagementRecorded(ctx, &v)
				default:
					// Unknown types commit without side effects.
					return nil
				}
			})
		},
		func() error {
			return bus.Subscribe(ctx, groupID, eventbus.TopicPostEvents, func(ctx context.Context, ev eventbus.Event) error {
				switch peekType(ev) {
				case events.PostEnriched:
					v, err := eventbus.DecodeJSON[events.PostEnrichedEvent](ev)
					if err != nil {
						return err
					}
					return handlers.handlePostEnriched(ctx, &v)
				default:
					return nil
				}
			})
		},
		func() error {
			return bus.Subscribe(ctx, groupID, eventbus.TopicReputationEvents, func(ctx context.Context, ev eventbus.Event) error {
				switch peekType(ev) {
				case events.ReputationAdjusted:
					v, err := eventbus.DecodeJSON[events.ReputationAdjustedEvent](ev)
					if err != nil {
						return err
					}
					return handlers.handleReputationAdjusted(ctx, &v)
				default:
					return nil
				}
			})
		},
	}

	logger.Log.Info("starting engagement worker with eventbus...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	for _, run := range runners {
		run := run
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(); err != nil && err != context.Canceled {
				logger.Log.Errorf("eventbus subscribe error: %v", err)
			}
		}()
	}

	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down engagement worker...")

	cancel()
	wg.Wait()

	logger.Log.Info("engagement worker stopped")
}

// peekType parses only the event type so each subscription can route
// before decoding the full payload.
func peekType(ev eventbus.Event) events.EventType {
	var peek struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(ev.Payload, &peek); err != nil {
		return ""
	}
	return events.EventType(peek.Type)
}
