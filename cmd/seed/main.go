package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/config"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/db"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/repositories"
)

var civicTags = []string{
	"transit", "housing", "education", "environment",
	"local-politics", "healthcare", "public-safety", "elections",
}

// Seeds the local database with fake users, follows, posts, reactions
// and comments so the feed endpoints have something to sample.
func main() {
	userCount := flag.Int("users", 25, "number of users to create")
	postCount := flag.Int("posts", 200, "number of posts to create")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	config.InitApp()
	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}

	database := db.Database()
	users := repositories.NewUserRepository(database)
	posts := repositories.NewPostRepository(database)
	follows := repositories.NewFollowRepository(database)
	reactions := repositories.NewReactionRepository(database)
	comments := repositories.NewCommentRepository(database)

	// Users, with a spread of reputations around the default.
	seededUsers := make([]*models.User, 0, *userCount)
	for i := 0; i < *userCount; i++ {
		rep := gofakeit.Number(20, 100)
		u := &models.User{
			Username:        fmt.Sprintf("%s%d", gofakeit.Username(), i),
			DisplayName:     gofakeit.Name(),
			Verified:        gofakeit.Bool(),
			ReputationScore: &rep,
		}
		if err := users.Insert(ctx, u); err != nil {
			logger.Log.Errorf("failed to insert user: %v", err)
			continue
		}
		seededUsers = append(seededUsers, u)
	}
	if len(seededUsers) < 2 {
		logger.Log.Error("not enough users seeded, aborting")
		os.Exit(1)
	}
	logger.Log.Infof("seeded %d users", len(seededUsers))

	// Follow graph: each user follows a handful of others.
	followEdges := 0
	for _, u := range seededUsers {
		for i := 0; i < gofakeit.Number(2, 6); i++ {
			target := seededUsers[rand.Intn(len(seededUsers))]
			if target.ID == u.ID {
				continue
			}
			if err := follows.Upsert(ctx, u.ID, target.ID); err != nil {
				logger.Log.Errorf("failed to insert follow: %v", err)
				continue
			}
			followEdges++
		}
	}
	logger.Log.Infof("seeded %d follow edges", followEdges)

	// Posts spread over the last three days so decay matters.
	seededPosts := make([]*models.Post, 0, *postCount)
	for i := 0; i < *postCount; i++ {
		author := seededUsers[rand.Intn(len(seededUsers))]
		tags := []string{civicTags[rand.Intn(len(civicTags))]}
		p := &models.Post{
			AuthorID:    author.ID,
			Author:      author.Snapshot(),
			Body:        gofakeit.Paragraph(1, 3, 12, " "),
			Tags:        tags,
			IsPolitical: gofakeit.Bool(),
			FeedVisible: true,
			CreatedAt:   time.Now().Add(-time.Duration(rand.Intn(72*60)) * time.Minute),
		}
		if err := posts.Insert(ctx, p); err != nil {
			logger.Log.Errorf("failed to insert post: %v", err)
			continue
		}
		seededPosts = append(seededPosts, p)
	}
	logger.Log.Infof("seeded %d posts", len(seededPosts))

	// Reactions and view counters, written directly since no worker is
	// consuming events during seeding.
	reactionCount := 0
	for _, p := range seededPosts {
		for i := 0; i < gofakeit.Number(0, 8); i++ {
			u := seededUsers[rand.Intn(len(seededUsers))]
			kind := models.ReactionLike
			if gofakeit.Number(0, 3) == 0 {
				kind = models.ReactionAgree
			}
			if err := reactions.Insert(ctx, &models.Reaction{UserID: u.ID, PostID: p.ID, Kind: kind}); err != nil {
				if repositories.IsDuplicate(err) {
					continue
				}
				logger.Log.Errorf("failed to insert reaction: %v", err)
				continue
			}
			if err := posts.IncrementCounter(ctx, p.ID, kind, 1); err != nil {
				logger.Log.Errorf("failed to bump counter: %v", err)
			}
			reactionCount++
		}
		views := int64(gofakeit.Number(0, 500))
		if views > 0 {
			if err := posts.IncrementCounter(ctx, p.ID, models.ReactionView, views); err != nil {
				logger.Log.Errorf("failed to bump views: %v", err)
			}
		}
	}
	logger.Log.Infof("seeded %d reactions", reactionCount)

	// Comments on a subset of posts.
	commentCount := 0
	for _, p := range seededPosts {
		if gofakeit.Number(0, 2) != 0 {
			continue
		}
		for i := 0; i < gofakeit.Number(1, 4); i++ {
			u := seededUsers[rand.Intn(len(seededUsers))]
			c := &models.Comment{
				PostID:   p.ID,
				AuthorID: u.ID,
				Body:     gofakeit.Sentence(12),
				Counts: models.EngagementCounts{
					Likes:  int64(gofakeit.Number(0, 20)),
					Agrees: int64(gofakeit.Number(0, 10)),
				},
			}
			if err := comments.Insert(ctx, c); err != nil {
				logger.Log.Errorf("failed to insert comment: %v", err)
				continue
			}
			if err := posts.IncrementCommentCount(ctx, p.ID, 1); err != nil {
				logger.Log.Errorf("failed to bump comment count: %v", err)
			}
			commentCount++
		}
	}
	logger.Log.Infof("seeded %d comments", commentCount)
}
