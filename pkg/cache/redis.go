package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the snapshot in Redis so several proxy replicas share one
// identifier list.
type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(redisClient *redis.Client) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{
		redis: redisClient,
	}
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, key Key) (*Snapshot, error) {
	data, err := s.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	return &snap, nil
}

// Save implements Store. The Redis key expires together with the snapshot so
// stale lists do not linger.
func (s *RedisStore) Save(ctx context.Context, key Key, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidEntry)
	}

	ttl := snap.TTL(snap.CachedAt)
	if ttl <= 0 {
		// Already expired, don't cache
		return nil
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := s.redis.Set(ctx, key.String(), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Name implements Store.
func (s *RedisStore) Name() string { return "redis" }

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}
