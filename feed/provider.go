package feed

import (
	"context"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

// CandidateFilter narrows the candidate pool fetch. Zero values mean "no
// constraint" except Limit, which callers must set.
type CandidateFilter struct {
	// Limit caps the pool size returned by the source.
	Limit int

	// Since excludes posts created before it when non-zero.
	Since time.Time

	// PoliticalOnly restricts the pool to political content.
	PoliticalOnly bool

	// Tags restricts the pool to posts carrying any of the given tags.
	Tags []string
}

// DataProvider is the content source the engine reads from. All methods
// are read-only; implementations must be safe for concurrent use across
// independent feed generations.
type DataProvider interface {
	// CandidatePosts returns up to filter.Limit feed-visible posts,
	// newest first.
	CandidatePosts(ctx context.Context, filter CandidateFilter) ([]models.Post, error)

	// AuthorReputations resolves the 0-100 reputation of each author.
	// Missing authors simply have no entry; readers default them.
	AuthorReputations(ctx context.Context, authorIDs []string) (map[string]*int, error)

	// ViewerFollowing returns the set of author ids the viewer follows.
	ViewerFollowing(ctx context.Context, viewerID string) (map[string]struct{}, error)

	// ViewerLikes returns which of the given posts the viewer has liked.
	// Called with the final page's ids only, never the full pool.
	ViewerLikes(ctx context.Context, viewerID string, postIDs []string) (map[string]struct{}, error)

	// CommentsForPosts returns the comments of the given posts keyed by
	// post id hex, for the comment-engagement sub-score.
	CommentsForPosts(ctx context.Context, postIDs []string) (map[string][]models.Comment, error)
}
