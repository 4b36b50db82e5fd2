package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/repositories"
)

// ErrInvalidReactionKind is returned for an unknown reaction kind.
var ErrInvalidReactionKind = errors.New("invalid reaction kind")

// ErrAlreadyReacted is returned when a toggle kind was already recorded
// for this (user, post).
var ErrAlreadyReacted = errors.New("already reacted")

// ErrReactionNotFound is returned when withdrawing a reaction that was
// never recorded.
var ErrReactionNotFound = errors.New("reaction not found")

// reportReputationDelta is the reputation hit an author takes per report
// against their post.
const reportReputationDelta = -1

// ReactionService records and withdraws viewer reactions. It writes the
// reaction documents itself but never touches post counters: those are
// applied asynchronously by the engagement worker consuming the events
// published here.
type ReactionService struct {
	posts      *repositories.PostRepository
	reactions  *repositories.ReactionRepository
	dispatcher *EventDispatcher
}

func NewReactionService(posts *repositories.PostRepository, reactions *repositories.ReactionRepository, dispatcher *EventDispatcher) *ReactionService {
	return &ReactionService{posts: posts, reactions: reactions, dispatcher: dispatcher}
}

// React records one reaction of the given kind.
//
// Toggle kinds (like, agree, ...) are stored as documents guarded by a
// unique index; a duplicate returns ErrAlreadyReacted. Repeatable kinds
// (share, view) skip the document and only emit the counter event.
func (s *ReactionService) React(ctx context.Context, userID primitive.ObjectID, postHexID string, kind models.ReactionKind) error {
	if !models.ValidReactionKind(kind) {
		return ErrInvalidReactionKind
	}
	postID, err := primitive.ObjectIDFromHex(postHexID)
	if err != nil {
		return ErrPostNotFound
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return err
	}

	if !kind.Repeatable() {
		reaction := &models.Reaction{UserID: userID, PostID: postID, Kind: kind}
		if err := s.reactions.Insert(ctx, reaction); err != nil {
			if repositories.IsDuplicate(err) {
				return ErrAlreadyReacted
			}
			return err
		}
	}

	if err := s.dispatcher.PublishEngagementRecorded(ctx, postID, userID, kind, 1); err != nil {
		logger.Log.Errorf("engagement event publish failed for %s/%s: %v", postHexID, kind, err)
	}

	if kind == models.ReactionReport {
		if err := s.dispatcher.PublishReputationAdjusted(ctx, post.AuthorID, reportReputationDelta, "post reported"); err != nil {
			logger.Log.Errorf("reputation event publish failed for %s: %v", post.AuthorID.Hex(), err)
		}
	}
	return nil
}

// Unreact withdraws a toggle reaction. Repeatable kinds cannot be
// withdrawn.
func (s *ReactionService) Unreact(ctx context.Context, userID primitive.ObjectID, postHexID string, kind models.ReactionKind) error {
	if !models.ValidReactionKind(kind) || kind.Repeatable() {
		return ErrInvalidReactionKind
	}
	postID, err := primitive.ObjectIDFromHex(postHexID)
	if err != nil {
		return ErrPostNotFound
	}

	deleted, err := s.reactions.Delete(ctx, userID, postID, kind)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrReactionNotFound
	}

	if err := s.dispatcher.PublishEngagementRecorded(ctx, postID, userID, kind, -1); err != nil {
		logger.Log.Errorf("engagement event publish failed for %s/%s: %v", postHexID, kind, err)
	}
	return nil
}
