package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/dto"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/repositories"
)

// ErrPostNotFound is returned when the requested post does not exist.
var ErrPostNotFound = errors.New("post not found")

// ErrAuthorNotFound is returned when the authenticated author's account
// document is missing.
var ErrAuthorNotFound = errors.New("author not found")

// PostService handles post creation and reads. Creation stores the post
// immediately visible and hands the slow work (preview rendering,
// embedding) to the enricher worker through the event bus.
type PostService struct {
	posts      *repositories.PostRepository
	users      *repositories.UserRepository
	dispatcher *EventDispatcher
}

func NewPostService(posts *repositories.PostRepository, users *repositories.UserRepository, dispatcher *EventDispatcher) *PostService {
	return &PostService{posts: posts, users: users, dispatcher: dispatcher}
}

// CreatePost stores a new post for the authenticated author and
// announces it. A publish failure is logged, not returned: the post is
// already stored and the enricher catches up once the bus recovers.
func (s *PostService) CreatePost(ctx context.Context, authorID primitive.ObjectID, req dto.CreatePostRequest) (*dto.PostDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	post := &models.Post{
		AuthorID:    author.ID,
		Author:      author.Snapshot(),
		Body:        req.Body,
		Tags:        req.Tags,
		IsPolitical: req.IsPolitical,
		FeedVisible: true,
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, err
	}

	if err := s.dispatcher.PublishPostCreated(ctx, post); err != nil {
		logger.Log.Errorf("post created event publish failed for %s: %v", post.ID.Hex(), err)
	}

	d := dto.NewPostDTO(*post)
	return &d, nil
}

// GetPost returns a single post by its hex id.
func (s *PostService) GetPost(ctx context.Context, hexID string) (*dto.PostDTO, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, ErrPostNotFound
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	d := dto.NewPostDTO(*post)
	return &d, nil
}

// RecordView registers one impression. Views are repeatable and carry no
// reaction document: the engagement worker applies the counter from the
// published event.
func (s *PostService) RecordView(ctx context.Context, hexID string, viewerID primitive.ObjectID) error {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return ErrPostNotFound
	}
	if _, err := s.posts.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return err
	}
	return s.dispatcher.PublishEngagementRecorded(ctx, id, viewerID, models.ReactionView, 1)
}
