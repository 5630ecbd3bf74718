package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/examportal/examportal-backend/internal/config"
	"github.com/examportal/examportal-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// statsTTL bounds staleness when invalidation is missed. The refresh worker
// rewrites the snapshot well before this elapses.
const statsTTL = 5 * time.Minute

// RedisStatsCache stores the statistics snapshot as a JSON value in Redis.
type RedisStatsCache struct {
	rdb *redis.Client
}

// NewRedisStatsCache creates a new RedisStatsCache.
func NewRedisStatsCache(rdb *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{rdb: rdb}
}

// Get returns the cached snapshot, or (nil, nil) on a miss.
func (c *RedisStatsCache) Get(ctx context.Context) (*model.Statistics, error) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.StatisticsKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stats := &model.Statistics{}
	if err := json.Unmarshal(raw, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Set stores the snapshot.
func (c *RedisStatsCache) Set(ctx context.Context, stats *model.Statistics) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, config.CacheKey.StatisticsKey(), raw, statsTTL).Err()
}

// Invalidate drops the snapshot so the next read recomputes it.
func (c *RedisStatsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, config.CacheKey.StatisticsKey()).Err()
}
