package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const DefaultRedisPrefix = "ledger:category:"

// RedisStore shares categories between ledger instances. Keys are written
// without expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key Key) (string, bool, error) {
	category, err := s.client.Get(ctx, s.prefix+key.String()).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return category, true, nil
}

func (s *RedisStore) PutIfAbsent(ctx context.Context, key Key, category string) (string, error) {
	redisKey := s.prefix + key.String()

	stored, err := s.client.SetNX(ctx, redisKey, category, 0).Result()
	if err != nil {
		return "", fmt.Errorf("redis setnx: %w", err)
	}
	if stored {
		return category, nil
	}

	existing, err := s.client.Get(ctx, redisKey).Result()
	if err != nil {
		return "", fmt.Errorf("redis get after setnx: %w", err)
	}
	return existing, nil
}
