package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"assessMatch/domain"
)

const keyPrefix = "recommend:"

// RecommendationCache stores full /recommend responses keyed by query hash.
// The cache is advisory: callers treat errors as misses.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached response for key, or (nil, nil) on a miss.
func (c *RecommendationCache) Get(ctx context.Context, key string) (*domain.RecommendationResponse, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var resp domain.RecommendationResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached response: %w", err)
	}

	return &resp, nil
}

// Set stores resp under key with the configured TTL.
func (c *RecommendationCache) Set(ctx context.Context, key string, resp *domain.RecommendationResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store response in Redis: %w", err)
	}

	return nil
}
