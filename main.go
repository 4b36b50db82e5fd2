package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/config"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/db"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/feed"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/repositories"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/services"
)

// One-shot feed preview: generates a single feed page against the local
// database and prints it as JSON. Useful for tuning weights without
// running the API.
func main() {
	viewerID := flag.String("user", "", "viewer user id (hex), empty for anonymous")
	limit := flag.Int("limit", 20, "page size")
	offset := flag.Int("offset", 0, "items to skip")
	seed := flag.Int64("seed", 0, "RNG seed, 0 draws from entropy")
	political := flag.Bool("political", false, "only political posts")
	tags := flag.String("tags", "", "comma-separated tag filter")
	weights := flag.String("weights", "", "overrides like recency=0.5,randomness=0.3")
	flag.Parse()

	config.InitApp()

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB: ", err)
	}

	database := db.Database()
	provider := services.NewMongoProvider(
		repositories.NewPostRepository(database),
		repositories.NewUserRepository(database),
		repositories.NewFollowRepository(database),
		repositories.NewReactionRepository(database),
		repositories.NewCommentRepository(database),
	)

	cfg := config.GetConfig().Feed
	engine := feed.NewEngine(provider, feed.Config{
		Weights: feed.ScoringWeights{
			Recency:         cfg.Weights.Recency,
			Reputation:      cfg.Weights.Reputation,
			Relationship:    cfg.Weights.Relationship,
			TopicSimilarity: cfg.Weights.TopicSimilarity,
			Randomness:      cfg.Weights.Randomness,
		},
		HalfLifeHours:        cfg.HalfLifeHours,
		PoolPad:              cfg.PoolPad,
		CandidateWindowHours: cfg.CandidateWindowHours,
	})

	overrides, err := parseWeights(*weights)
	if err != nil {
		log.Fatal(err)
	}

	opts := feed.Options{
		Limit:         *limit,
		Offset:        *offset,
		PoliticalOnly: *political,
	}
	if *seed != 0 {
		opts.Seed = seed
	}
	if *tags != "" {
		opts.Tags = strings.Split(*tags, ",")
	}

	result, err := engine.Generate(ctx, feed.ViewerContext{
		UserID:          *viewerID,
		WeightOverrides: overrides,
	}, opts)
	if err != nil {
		log.Fatal("feed generation failed: ", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

func parseWeights(raw string) (map[string]float64, error) {
	if raw == "" {
		return nil, nil
	}
	overrides := map[string]float64{}
	for _, pair := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("weight override %q must look like factor=value", pair)
		}
		var v float64
		if _, err := fmt.Sscanf(value, "%g", &v); err != nil {
			return nil, fmt.Errorf("weight override %q: %v", pair, err)
		}
		overrides[strings.TrimSpace(key)] = v
	}
	return overrides, nil
}
