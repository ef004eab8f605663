package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// LikeCache 用 redis set 维护每篇文章的点赞用户集合
type LikeCache interface {
	IsMember(ctx context.Context, aid, uid int64) (bool, error)
	Add(ctx context.Context, aid, uid int64) error
	Remove(ctx context.Context, aid, uid int64) error
}

type RedisLikeCache struct {
	client redis.Cmdable
}

func NewRedisLikeCache(client redis.Cmdable) LikeCache {
	return &RedisLikeCache{
		client: client,
	}
}

func (c *RedisLikeCache) IsMember(ctx context.Context, aid, uid int64) (bool, error) {
	return c.client.SIsMember(ctx, c.key(aid), uid).Result()
}

func (c *RedisLikeCache) Add(ctx context.Context, aid, uid int64) error {
	return c.client.SAdd(ctx, c.key(aid), uid).Err()
}

func (c *RedisLikeCache) Remove(ctx context.Context, aid, uid int64) error {
	return c.client.SRem(ctx, c.key(aid), uid).Err()
}

func (c *RedisLikeCache) key(aid int64) string {
	return fmt.Sprintf("article:liked:%d", aid)
}
