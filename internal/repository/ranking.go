package repository

import (
	"context"

	"blog/internal/domain"
	"blog/internal/repository/cache"
)

type RankingRepository interface {
	ReplaceHot(ctx context.Context, scores []domain.HotScore) error
}

type CachedRankingRepository struct {
	cache cache.HotCache
}

func NewCachedRankingRepository(c cache.HotCache) RankingRepository {
	return &CachedRankingRepository{
		cache: c,
	}
}

func (repo *CachedRankingRepository) ReplaceHot(ctx context.Context, scores []domain.HotScore) error {
	return repo.cache.Replace(ctx, scores)
}
