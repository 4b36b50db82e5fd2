package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/cors"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/api/router"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/auth"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/cache"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/config"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/db"
	_ "github.com/UnitedWeRise-org/UnitedWeRise-sub005/docs" // swag generated
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/eventbus"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/services"
)

// @title           UnitedWeRise Feed API
// @version         1.0
// @description     Feed generation and engagement API for the UnitedWeRise civic network
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.InitApp()

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}
	// Redis only backs caching; the API serves without it.
	if err := cache.Init(ctx); err != nil {
		logger.Log.Warnf("redis unavailable, caching disabled: %v", err)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		logger.Log.Errorf("failed to initialize JWT manager: %v", err)
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

	dispatcher := services.NewEventDispatcher(bus, "api")
	r := router.New(router.NewDeps(jwtManager, dispatcher))

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
	})

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	logger.Log.Infof("starting api server on %s", addr)
	if err := http.ListenAndServe(addr, corsWrapper.Handler(r)); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("api server stopped: %v", err)
		os.Exit(1)
	}
}
