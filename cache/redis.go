package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/config"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
)

var (
	clientOnce sync.Once
	client     *redis.Client
)

// ErrMiss is returned by GetJSON when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Init connects the global Redis client using config values.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		addr := config.GetConfig().RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		c := redis.NewClient(&redis.Options{Addr: addr, DB: 0})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := c.Ping(pingCtx).Err(); err != nil {
			initErr = err
			return
		}
		client = c
		logger.Log.Info("redis connected")
	})
	return initErr
}

// Client returns the global client (nil before Init).
func Client() *redis.Client {
	return client
}

// Ping verifies the connection is still alive, for health checks.
func Ping(ctx context.Context) error {
	if client == nil {
		return redis.ErrClosed
	}
	return client.Ping(ctx).Err()
}

// GetJSON loads and unmarshals a cached value into out.
func GetJSON(ctx context.Context, key string, out any) error {
	if client == nil {
		return ErrMiss
	}
	data, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// SetJSON marshals and stores a value with the given TTL. Failures are
// logged, not returned: the cache is an optimization, never a
// correctness dependency.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Log.Errorf("cache marshal failed for %s: %v", key, err)
		return
	}
	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Log.Errorf("cache set failed for %s: %v", key, err)
	}
}
