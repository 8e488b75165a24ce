package config

import (
	"context"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient returns nil when REDIS_URL is unset, which disables the user list cache.
func NewRedisClient(config *koanf.Koanf, log *zap.Logger) *redis.Client {
	addr := config.String("REDIS_URL")
	if addr == "" {
		log.Info("redis is not configured, user list cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.String("REDIS_PASSWORD"),
		DB:           0,
		MinIdleConns: 2,
		PoolSize:     20,
		PoolTimeout:  30 * time.Second,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})

	err := redisotel.InstrumentTracing(rdb)
	if err != nil {
		log.Warn("failed to instrument redis tracing", zap.Error(err))
	}

	err = rdb.Ping(context.Background()).Err()
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}

	return rdb
}
