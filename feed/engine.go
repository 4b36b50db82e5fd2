package feed

import (
	"context"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

// AlgorithmProbabilityCloud names the sampling algorithm reported in
// feed results.
const AlgorithmProbabilityCloud = "probability-cloud"

// DefaultPoolPad is the safety margin added on top of limit+offset when
// sizing the candidate pool, so the sampler has headroom to reorder.
const DefaultPoolPad = 50

// Config carries the engine's tunables, normally sourced from the feed
// section of config.yaml.
type Config struct {
	Weights              ScoringWeights
	HalfLifeHours        float64
	PoolPad              int
	CandidateWindowHours int
}

// Engine is the fetch/pagination coordinator: it sizes and fetches the
// candidate pool, runs the probability cloud sampler over it and slices
// the requested page out of the sampled ordering.
type Engine struct {
	provider DataProvider
	cfg      Config

	// now is swappable for tests.
	now func() time.Time
}

// NewEngine builds an engine over the given content source. Zero config
// fields fall back to the shipped defaults.
func NewEngine(provider DataProvider, cfg Config) *Engine {
	if cfg.Weights == (ScoringWeights{}) {
		cfg.Weights = DefaultScoringWeights()
	}
	if cfg.HalfLifeHours <= 0 {
		cfg.HalfLifeHours = 18
	}
	if cfg.PoolPad <= 0 {
		cfg.PoolPad = DefaultPoolPad
	}
	return &Engine{provider: provider, cfg: cfg, now: time.Now}
}

// Options selects one page of one feed generation.
type Options struct {
	// Limit is the page size; Offset is the number of sampled items to
	// skip before the page starts.
	Limit  int
	Offset int

	// Seed fixes the sampling RNG for exact reproducibility. nil draws
	// from entropy.
	Seed *int64

	// PoliticalOnly and Tags narrow the candidate pool.
	PoliticalOnly bool
	Tags          []string
}

// Item is one feed entry: the post, its factor scores and mass, and the
// per-viewer liked flag.
type Item struct {
	Post    models.Post  `json:"post"`
	Scores  FactorScores `json:"scores"`
	Mass    float64      `json:"mass"`
	IsLiked bool         `json:"is_liked"`
}

// Stats reports how one generation ran.
type Stats struct {
	PoolSize   int  `json:"pool_size"`
	Considered int  `json:"considered"`
	Returned   int  `json:"returned"`
	Seeded     bool `json:"seeded"`
}

// Result is one generated feed page.
type Result struct {
	Items     []Item         `json:"items"`
	Algorithm string         `json:"algorithm"`
	Weights   ScoringWeights `json:"weights"`
	Stats     Stats          `json:"stats"`
}

// Generate produces one feed page for the viewer.
//
// Pagination across a probability-sampled feed is unstable by design:
// each call fetches a fresh pool and draws a fresh ordering, so page 2
// requested independently is not guaranteed disjoint from page 1. Real-
// time freshness is traded for strict pagination consistency; callers
// that need a stable replay pass the same Seed (and get the same pool
// only as long as the underlying content has not moved).
//
// Failure semantics: a pool fetch failure aborts the call with a
// SourceUnavailableError. Viewer-side lookups (following, reputations,
// likes) degrade to defaults with a log line instead, since each feeds
// only one signal.
func (e *Engine) Generate(ctx context.Context, viewer ViewerContext, opts Options) (*Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	weights, err := e.cfg.Weights.Merge(viewer.WeightOverrides)
	if err != nil {
		return nil, err
	}

	filter := CandidateFilter{
		Limit:         opts.Limit + opts.Offset + e.cfg.PoolPad,
		PoliticalOnly: opts.PoliticalOnly,
		Tags:          opts.Tags,
	}
	if e.cfg.CandidateWindowHours > 0 {
		filter.Since = e.now().Add(-time.Duration(e.cfg.CandidateWindowHours) * time.Hour)
	}

	pool, err := e.provider.CandidatePosts(ctx, filter)
	if err != nil {
		return nil, &SourceUnavailableError{Op: "candidate fetch", Err: err}
	}

	viewer = e.resolveViewer(ctx, viewer)
	reputations := e.lookupReputations(ctx, pool)

	rng := NewRNG(opts.Seed)
	now := e.now()
	candidates := make([]Candidate, 0, len(pool))
	for _, post := range pool {
		// A post without an author snapshot cannot be scored; skip it
		// rather than aborting the batch.
		if post.Author.ID.IsZero() {
			logger.WarnWithFields("skipping malformed feed candidate", logger.Fields{
				"post_id": post.ID.Hex(),
				"reason":  "missing author snapshot",
			})
			continue
		}
		rep := reputations[post.Author.ID.Hex()]
		candidates = append(candidates, scoreCandidate(post, viewer, weights, rep, e.cfg.HalfLifeHours, now, rng))
	}

	order := SampleOrdering(candidates, rng)

	start := opts.Offset
	if start > len(order) {
		start = len(order)
	}
	end := start + opts.Limit
	if end > len(order) {
		end = len(order)
	}

	items := make([]Item, 0, end-start)
	for _, idx := range order[start:end] {
		c := candidates[idx]
		items = append(items, Item{Post: c.Post, Scores: c.Scores, Mass: c.Mass})
	}

	e.annotateLikes(ctx, viewer, items)

	return &Result{
		Items:     items,
		Algorithm: AlgorithmProbabilityCloud,
		Weights:   weights,
		Stats: Stats{
			PoolSize:   len(pool),
			Considered: len(candidates),
			Returned:   len(items),
			Seeded:     opts.Seed != nil,
		},
	}, nil
}

// resolveViewer fills in the follow set when the caller did not supply
// one. A lookup failure degrades to an empty set: the viewer then sees
// baseline relationship scores instead of an error page.
func (e *Engine) resolveViewer(ctx context.Context, viewer ViewerContext) ViewerContext {
	if viewer.UserID == "" || viewer.Following != nil {
		return viewer
	}
	following, err := e.provider.ViewerFollowing(ctx, viewer.UserID)
	if err != nil {
		logger.WarnWithFields("viewer following lookup failed, using baseline relationship", logger.Fields{
			"viewer_id": viewer.UserID,
			"error":     err.Error(),
		})
		following = map[string]struct{}{}
	}
	viewer.Following = following
	return viewer
}

// lookupReputations resolves author reputations for the pool. Failures
// degrade to default reputation for every author.
func (e *Engine) lookupReputations(ctx context.Context, pool []models.Post) map[string]*int {
	if len(pool) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(pool))
	ids := make([]string, 0, len(pool))
	for _, p := range pool {
		hex := p.Author.ID.Hex()
		if _, ok := seen[hex]; ok || p.Author.ID.IsZero() {
			continue
		}
		seen[hex] = struct{}{}
		ids = append(ids, hex)
	}
	reputations, err := e.provider.AuthorReputations(ctx, ids)
	if err != nil {
		logger.WarnWithFields("author reputation lookup failed, using defaults", logger.Fields{
			"authors": len(ids),
			"error":   err.Error(),
		})
		return nil
	}
	return reputations
}

// annotateLikes marks the final page's items the viewer already liked.
// Only the page ids are looked up, never the full pool.
func (e *Engine) annotateLikes(ctx context.Context, viewer ViewerContext, items []Item) {
	if viewer.UserID == "" || len(items) == 0 {
		return
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.Post.ID.Hex()
	}
	liked, err := e.provider.ViewerLikes(ctx, viewer.UserID, ids)
	if err != nil {
		logger.WarnWithFields("viewer likes lookup failed, leaving annotations unset", logger.Fields{
			"viewer_id": viewer.UserID,
			"error":     err.Error(),
		})
		return
	}
	for i := range items {
		if _, ok := liked[items[i].Post.ID.Hex()]; ok {
			items[i].IsLiked = true
		}
	}
}
