package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/Nzyazin/ledger/internal/core/logger"
	"github.com/Nzyazin/ledger/pkg/config"
	"github.com/go-redis/redis/v8"
)

type Client struct {
	log logger.Logger
	*redis.Client
}

func NewRedisClient(cfg config.RedisConfig, log logger.Logger) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &Client{log: log, Client: client}, nil
}

func (c *Client) Close() error {
	c.log.Info("Closing redis connection")
	return c.Client.Close()
}
