package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisPingTimeout bounds the startup health check so an unreachable Redis
// degrades the app (caches and geo search off) instead of hanging boot.
const redisPingTimeout = 5 * time.Second

func NewRedisClient(cfg *Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
