package service

import (
	"context"
	"encoding/json"

	"github.com/examportal/examportal-backend/internal/config"
	"github.com/examportal/examportal-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// RedisSubmissionBus carries submission events over a Redis PubSub channel so
// the monitor feed works across multiple server instances.
type RedisSubmissionBus struct {
	rdb *redis.Client
}

// NewRedisSubmissionBus creates a new RedisSubmissionBus.
func NewRedisSubmissionBus(rdb *redis.Client) *RedisSubmissionBus {
	return &RedisSubmissionBus{rdb: rdb}
}

// Publish broadcasts a submission event.
func (b *RedisSubmissionBus) Publish(ctx context.Context, event model.SubmissionEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, config.CacheKey.SubmissionChannel(), raw).Err()
}

// Subscribe opens a subscription on the submission channel. The caller owns
// the returned PubSub and must Close it.
func (b *RedisSubmissionBus) Subscribe(ctx context.Context) *redis.PubSub {
	return b.rdb.Subscribe(ctx, config.CacheKey.SubmissionChannel())
}
