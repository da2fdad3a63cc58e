package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-resilience-service/internal/domain"
)

// DefaultWeatherTTL bounds how long a weather observation stays usable.
const DefaultWeatherTTL = 30 * time.Minute

// RedisWeatherCache stores weather samples with a TTL so stale observations
// age out on their own. Suited to multi-instance deployments.
type RedisWeatherCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisWeatherCache(rdb *redis.Client, ttl time.Duration) *RedisWeatherCache {
	if ttl <= 0 {
		ttl = DefaultWeatherTTL
	}
	return &RedisWeatherCache{rdb: rdb, ttl: ttl}
}

func (c *RedisWeatherCache) Get(ctx context.Context, key string) (domain.WeatherSample, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.WeatherSample{}, false, nil
	}
	if err != nil {
		return domain.WeatherSample{}, false, fmt.Errorf("weather cache get: %w", err)
	}

	var sample domain.WeatherSample
	if err := json.Unmarshal([]byte(raw), &sample); err != nil {
		return domain.WeatherSample{}, false, fmt.Errorf("weather cache decode: %w", err)
	}
	return sample, true, nil
}

func (c *RedisWeatherCache) Put(ctx context.Context, key string, sample domain.WeatherSample) error {
	raw, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("weather cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("weather cache put: %w", err)
	}
	return nil
}
