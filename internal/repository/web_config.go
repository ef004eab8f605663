package repository

import (
	"context"

	"blog/internal/domain"
	"blog/internal/repository/cache"
	"blog/internal/repository/dao"
	"blog/pkg/logger"
)

type WebConfigRepository interface {
	Get(ctx context.Context, key string) (domain.WebConfig, error)
	Save(ctx context.Context, cfg domain.WebConfig) error
}

type CachedWebConfigRepository struct {
	dao   dao.WebConfigDAO
	cache cache.WebConfigCache
	l     logger.Logger
}

func NewCachedWebConfigRepository(d dao.WebConfigDAO,
	c cache.WebConfigCache, l logger.Logger) WebConfigRepository {
	return &CachedWebConfigRepository{
		dao:   d,
		cache: c,
		l:     l,
	}
}

func (repo *CachedWebConfigRepository) Get(ctx context.Context, key string) (domain.WebConfig, error) {
	val, err := repo.cache.Get(ctx, key)
	if err == nil {
		return domain.WebConfig{Key: key, Value: val}, nil
	}
	cfg, err := repo.dao.Get(ctx, key)
	if err != nil {
		return domain.WebConfig{}, err
	}
	err = repo.cache.Set(ctx, key, cfg.ConfigValue)
	if err != nil {
		repo.l.Error("回写配置缓存失败",
			logger.String("key", key), logger.Error(err))
	}
	return domain.WebConfig{Key: cfg.ConfigKey, Value: cfg.ConfigValue}, nil
}

func (repo *CachedWebConfigRepository) Save(ctx context.Context, cfg domain.WebConfig) error {
	err := repo.dao.Upsert(ctx, cfg.Key, cfg.Value)
	if err != nil {
		return err
	}
	return repo.cache.Del(ctx, cfg.Key)
}
