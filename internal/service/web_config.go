package service

import (
	"context"
	"errors"

	"blog/internal/domain"
	"blog/internal/repository"
	"blog/internal/repository/dao"
)

type WebConfigService interface {
	Get(ctx context.Context, key string) (domain.WebConfig, error)
	// ArticleCover 默认文章封面，没配置时返回空串
	ArticleCover(ctx context.Context) (string, error)
	Save(ctx context.Context, cfg domain.WebConfig) error
}

type webConfigService struct {
	repo repository.WebConfigRepository
}

func NewWebConfigService(repo repository.WebConfigRepository) WebConfigService {
	return &webConfigService{
		repo: repo,
	}
}

func (svc *webConfigService) Get(ctx context.Context, key string) (domain.WebConfig, error) {
	return svc.repo.Get(ctx, key)
}

func (svc *webConfigService) ArticleCover(ctx context.Context) (string, error) {
	cfg, err := svc.repo.Get(ctx, domain.WebConfigKeyArticleCover)
	if errors.Is(err, dao.ErrDataNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cfg.Value, nil
}

func (svc *webConfigService) Save(ctx context.Context, cfg domain.WebConfig) error {
	return svc.repo.Save(ctx, cfg)
}
