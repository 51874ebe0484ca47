// Package repositories provides the collection gateway for terramatch-engine.
//
// The store keeps two logical collections, products and projects, each
// serialized as one JSON array under a fixed key. Every write replaces the
// whole collection (last-write-wins); every read re-fetches it. There are no
// transactions and no migrations.
package repositories

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Collection keys. Fixed names shared by all repository instances.
const (
	ProductsKey = "terramatch:products"
	ProjectsKey = "terramatch:projects"
)

// KV is the minimal key-value contract the collection gateway needs.
// The second return value of Get reports whether the key exists, so callers
// can distinguish an absent collection from an empty one.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RedisKV implements KV on a Redis client.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps a Redis client as a KV store.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// Get returns the value under key, with ok=false when the key is absent.
func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Delete removes key. Deleting an absent key is not an error.
func (s *RedisKV) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
