package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/fadehouse/barbershop-api/internal/config"
)

// NewRedis returns a connected client or nil when Redis is not configured
// or unreachable. Callers must degrade gracefully on nil: the catalog cache
// is an optimization, never a dependency.
func NewRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
