package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/api/handlers"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/api/middleware"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/auth"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/cache"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/db"
	_ "github.com/UnitedWeRise-org/UnitedWeRise-sub005/docs"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/repositories"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/services"
)

// Deps carries the wired services the router mounts.
type Deps struct {
	JWT       *auth.JWTManager
	Feed      *services.FeedService
	Trending  *services.TrendingService
	Posts     *services.PostService
	Reactions *services.ReactionService
}

// NewDeps wires the repository, provider and service stack over the
// global Mongo database.
func NewDeps(jwtManager *auth.JWTManager, dispatcher *services.EventDispatcher) Deps {
	database := db.Database()
	posts := repositories.NewPostRepository(database)
	users := repositories.NewUserRepository(database)
	follows := repositories.NewFollowRepository(database)
	reactions := repositories.NewReactionRepository(database)
	comments := repositories.NewCommentRepository(database)

	provider := services.NewMongoProvider(posts, users, follows, reactions, comments)

	return Deps{
		JWT:       jwtManager,
		Feed:      services.NewFeedService(provider),
		Trending:  services.NewTrendingService(provider),
		Posts:     services.NewPostService(posts, users, dispatcher),
		Reactions: services.NewReactionService(posts, reactions, dispatcher),
	}
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	// Health check covers both backing stores. Redis being down degrades
	// caching only, so it reports but does not fail the check.
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		redisStatus := "ok"
		if err := cache.Ping(ctx); err != nil {
			redisStatus = "down"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": redisStatus})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/feed", middleware.OptionalAuth(deps.JWT), handlers.GetFeedHandler(deps.Feed))
		api.GET("/feed/trending", handlers.GetTrendingHandler(deps.Trending))

		api.POST("/posts", middleware.RequireAuth(deps.JWT), handlers.CreatePostHandler(deps.Posts))
		api.GET("/posts/:id", handlers.GetPostHandler(deps.Posts))
		api.POST("/posts/:id/view", middleware.OptionalAuth(deps.JWT), handlers.RecordViewHandler(deps.Posts))

		api.POST("/posts/:id/reactions", middleware.RequireAuth(deps.JWT), handlers.ReactHandler(deps.Reactions))
		api.DELETE("/posts/:id/reactions/:kind", middleware.RequireAuth(deps.JWT), handlers.UnreactHandler(deps.Reactions))
	}

	return r
}
