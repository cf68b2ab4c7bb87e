// Package cache provides the Redis client used for rate limiting. If the
// server cannot be reached at startup the constructor returns nil and callers
// degrade gracefully by disabling rate limiting.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ticket-portal/pkg/utils"
)

// NewRedisClient connects to Redis and pings it with a short timeout. The
// returned client is nil when the connection fails; that is not an error.
func NewRedisClient(cfg utils.RedisConfig, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, rate limiting disabled",
			zap.String("addr", cfg.Addr),
			zap.Error(err))
		return nil
	}

	return client
}
