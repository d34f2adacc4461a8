package database

import (
	"context"
	"fmt"
	"time"

	"movie-ticketing/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis creates the Redis client used for seat holds. Holds rely on
// key TTLs for expiry, so a reachable Redis is required at startup.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}
