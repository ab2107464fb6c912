package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"linkrank/config"
)

// InitRedis 建立并探活 Redis 连接
func InitRedis(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
	}
	return rdb, nil
}
