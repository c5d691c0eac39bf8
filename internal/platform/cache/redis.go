package cache

import (
	"context"
	"fmt"
	"log"
	"net"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Host string
	Port string
	DB   int
}

func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)

	log.Printf("Connecting to Redis at %s...", addr)

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("Redis connected successfully!")

	return client, nil
}
