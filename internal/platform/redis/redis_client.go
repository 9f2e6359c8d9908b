// Package redis builds the shared Redis client for the cache layer.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"orgair_backend/internal/platform/config"
)

// NewClient connects to the cache backend and verifies the connection.
// Callers treat a failure as non-fatal: the service runs without a
// cache, it just reads everything from the store.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
