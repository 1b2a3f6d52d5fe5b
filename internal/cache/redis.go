package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HARSHPATEL-54/SGP4/internal/domain"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	key := cacheKey(restaurantID)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var restaurant domain.Restaurant
	if err2 := json.Unmarshal(data, &restaurant); err2 != nil {
		return nil, fmt.Errorf("unmarshal restaurant failed: %w", err2)
	}

	return &restaurant, nil
}

func (r RedisCache) Set(ctx context.Context, restaurantID string, restaurant *domain.Restaurant) error {
	key := cacheKey(restaurantID)
	data, err := json.Marshal(restaurant)
	if err != nil {
		return fmt.Errorf("marshal restaurant failed: %w", err)
	}

	// Jitter spreads expirations so a popular restaurant does not refill
	// the cache in lockstep.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	if ret := r.client.Set(ctx, key, string(data), ttl); ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context, restaurantID string) error {
	key := cacheKey(restaurantID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func cacheKey(restaurantID string) string {
	return fmt.Sprintf("restaurant:%s", restaurantID)
}
