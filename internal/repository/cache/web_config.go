package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type WebConfigCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

type RedisWebConfigCache struct {
	client     redis.Cmdable
	expiration time.Duration
}

func NewRedisWebConfigCache(client redis.Cmdable) WebConfigCache {
	return &RedisWebConfigCache{
		client:     client,
		expiration: time.Hour,
	}
}

func (c *RedisWebConfigCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.key(key)).Result()
}

func (c *RedisWebConfigCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, c.key(key), value, c.expiration).Err()
}

func (c *RedisWebConfigCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

func (c *RedisWebConfigCache) key(key string) string {
	return fmt.Sprintf("web:config:%s", key)
}
