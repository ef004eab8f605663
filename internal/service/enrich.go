package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"blog/internal/domain"
	"blog/internal/repository"
)

// ArticleEnricher 给一批文章补全装饰字段。
// 选中的步骤并发执行，各自只写自己负责的字段；
// 任何一步失败整批失败。输出顺序和输入顺序一致
type ArticleEnricher struct {
	repo  repository.ArticleRepository
	arts  []domain.Article
	steps []func(ctx context.Context) error
}

func NewArticleEnricher(repo repository.ArticleRepository, arts []domain.Article) *ArticleEnricher {
	return &ArticleEnricher{
		repo: repo,
		arts: arts,
	}
}

func (e *ArticleEnricher) WithCategory() *ArticleEnricher {
	e.steps = append(e.steps, e.fillCategories)
	return e
}

func (e *ArticleEnricher) WithTags() *ArticleEnricher {
	e.steps = append(e.steps, e.fillTags)
	return e
}

func (e *ArticleEnricher) WithHotIndex() *ArticleEnricher {
	e.steps = append(e.steps, e.fillHotIndexes)
	return e
}

func (e *ArticleEnricher) Run(ctx context.Context) ([]domain.Article, error) {
	if len(e.arts) == 0 || len(e.steps) == 0 {
		return e.arts, nil
	}
	var eg errgroup.Group
	for _, step := range e.steps {
		step := step
		eg.Go(func() error {
			return step(ctx)
		})
	}
	err := eg.Wait()
	if err != nil {
		return nil, err
	}
	return e.arts, nil
}

func (e *ArticleEnricher) fillCategories(ctx context.Context) error {
	ids := make([]int64, 0, len(e.arts))
	for _, art := range e.arts {
		ids = append(ids, art.CategoryId)
	}
	categories, err := e.repo.CategoriesByIds(ctx, ids)
	if err != nil {
		return err
	}
	for i := range e.arts {
		e.arts[i].Category = categories[e.arts[i].CategoryId]
	}
	return nil
}

func (e *ArticleEnricher) fillTags(ctx context.Context) error {
	ids := e.articleIds()
	tags, err := e.repo.TagsByArticleIds(ctx, ids)
	if err != nil {
		return err
	}
	for i := range e.arts {
		e.arts[i].Tags = tags[e.arts[i].Id]
	}
	return nil
}

func (e *ArticleEnricher) fillHotIndexes(ctx context.Context) error {
	ids := e.articleIds()
	scores, err := e.repo.HotScores(ctx, ids)
	if err != nil {
		return err
	}
	for i := range e.arts {
		e.arts[i].HotIndex = scores[e.arts[i].Id]
	}
	return nil
}

func (e *ArticleEnricher) articleIds() []int64 {
	ids := make([]int64, 0, len(e.arts))
	for _, art := range e.arts {
		ids = append(ids, art.Id)
	}
	return ids
}
