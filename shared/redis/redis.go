package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// Client wraps the go-redis client with the handful of operations the
// portal uses for cross-request caching.
type Client struct {
	client *redis.Client
}

func NewClient(addr, password string) *Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &Client{client: client}
}

func (r *Client) Set(key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *Client) Get(key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *Client) Del(key string) error {
	return r.client.Del(ctx, key).Err()
}

// Ping verifies the connection; used by the health endpoint.
func (r *Client) Ping() error {
	return r.client.Ping(ctx).Err()
}
