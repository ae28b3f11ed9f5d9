package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

var (
	redisOnce   sync.Once
	redisClient *redis.Client
	redisErr    error
)

// Redis connects to REDIS_URL once. It returns (nil, nil) when Redis is not configured.
func Redis(ctx context.Context) (*redis.Client, error) {
	redisOnce.Do(func() {
		url := Get().RedisURL
		if url == "" {
			return
		}
		opt, err := redis.ParseURL(url)
		if err != nil {
			redisErr = fmt.Errorf("failed to parse Redis URL: %w", err)
			return
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			redisErr = fmt.Errorf("failed to connect to Redis: %w", err)
			return
		}
		redisClient = rdb
	})
	return redisClient, redisErr
}
