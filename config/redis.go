package config

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/gommon/log"
)

// ConnectRedis establishes connection to Redis. It returns nil when no
// address is configured or the server is unreachable; the email delivery
// log then falls back to a no-op store.
func ConnectRedis(ctx context.Context, cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, email delivery log disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Warnf("Warning: Redis connection failed: %v", err)
		log.Warn("Email delivery log will not be persisted")
		_ = client.Close()
		return nil
	}

	log.Info("Connected to Redis")
	return client
}
