package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"steprush-backend/internal/config"
)

const (
	KeyRateLimit = "ratelimit:%s:%s"

	RateLimitStarts   = 30  // round starts per minute
	RateLimitSteps    = 120 // steps per minute
	RateLimitCashouts = 60  // cashouts per minute
)

// RateLimiter caps request rates per player using a redis counter with a
// sliding expiry window. Session state never touches redis; this is the
// only concern it serves.
type RateLimiter struct {
	client *redis.Client
	ctx    context.Context
}

func NewRateLimiter(cfg *config.Config) (*RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RateLimiter{client: client, ctx: ctx}, nil
}

func (rl *RateLimiter) Allow(playerID, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, playerID, action)

	count, err := rl.client.Incr(rl.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}

	if count == 1 {
		rl.client.Expire(rl.ctx, key, window)
	}

	return count <= int64(limit), nil
}

func (rl *RateLimiter) Close() error {
	return rl.client.Close()
}
