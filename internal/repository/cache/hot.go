package cache

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"blog/internal/domain"
)

// HotCache 热度榜，zset 里 member 是文章 id，score 是热度分
type HotCache interface {
	// Scores 批量取热度分，没上榜的文章得 0 分
	Scores(ctx context.Context, aids []int64) (map[int64]float64, error)
	// Replace 用新一轮计算结果整体替换榜单
	Replace(ctx context.Context, scores []domain.HotScore) error
}

type RedisHotCache struct {
	client redis.Cmdable
	key    string
}

func NewRedisHotCache(client redis.Cmdable) HotCache {
	return &RedisHotCache{
		client: client,
		key:    "article:hot",
	}
}

func (c *RedisHotCache) Scores(ctx context.Context, aids []int64) (map[int64]float64, error) {
	if len(aids) == 0 {
		return map[int64]float64{}, nil
	}
	members := make([]string, 0, len(aids))
	for _, aid := range aids {
		members = append(members, strconv.FormatInt(aid, 10))
	}
	vals, err := c.client.ZMScore(ctx, c.key, members...).Result()
	if err != nil {
		return nil, err
	}
	res := make(map[int64]float64, len(aids))
	for i, aid := range aids {
		res[aid] = vals[i]
	}
	return res, nil
}

func (c *RedisHotCache) Replace(ctx context.Context, scores []domain.HotScore) error {
	members := make([]redis.Z, 0, len(scores))
	for _, s := range scores {
		members = append(members, redis.Z{
			Score:  s.Score,
			Member: s.ArticleId,
		})
	}
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.key)
	if len(members) > 0 {
		pipe.ZAdd(ctx, c.key, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}
