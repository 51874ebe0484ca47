// Package database constructs the backing store clients for terramatch-engine.
package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/terramatch-studio/terramatch-engine/pkg/config"
)

// NewRedisClient creates a Redis client for the collection store and
// verifies the connection before returning it.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
