package cache

import (
	"context"
	"time"

	"sponsorsync-api/core/config"
	"sponsorsync-api/core/constants"
	"sponsorsync-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is the Redis-backed shared state used across module instances:
// the matchmaking daily quota counters and the token blacklist.
type Cache interface {
	IncrementDailyQuota(ctx context.Context, userID string) (int64, error)
	AddToTokenBlacklist(ctx context.Context, token string) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Close() error
}

type redisCache struct {
	client *redis.Client
}

// NewCache connects to Redis and returns the shared cache
func NewCache(cfg config.RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis initialized successfully", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

// IncrementDailyQuota bumps the caller's matchmaking request counter and
// returns the new count. The key expires a rolling day after its first
// increment, so the counter is shared across instances and survives
// restarts (unlike an in-process map).
func (c *redisCache) IncrementDailyQuota(ctx context.Context, userID string) (int64, error) {
	key := constants.RedisKeyMatchmakingQuota + userID

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	if count == 1 {
		if err := c.client.Expire(ctx, key, constants.MatchmakingQuotaWindow).Err(); err != nil {
			logger.Error("Cache:IncrementDailyQuota:Expire", err)
		}
	}

	return count, nil
}

func (c *redisCache) AddToTokenBlacklist(ctx context.Context, token string) error {
	key := constants.RedisKeyTokenBlacklist + token
	return c.client.Set(ctx, key, "1", constants.MatchmakingQuotaWindow).Err()
}

func (c *redisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := constants.RedisKeyTokenBlacklist + token
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

func (c *redisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
