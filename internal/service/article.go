package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"blog/internal/domain"
	events "blog/internal/events/article"
	"blog/internal/repository"
	"blog/pkg/logger"
	"blog/pkg/storage"
)

const (
	// 详情页的最新文章条数
	newestLimit = 5
	// 详情页的相关推荐条数
	relatedLimit = 6
)

type ArticleService interface {
	ListSearch(ctx context.Context, keywords string) ([]domain.Article, error)
	PageArchives(ctx context.Context, page domain.Page) ([]domain.Article, int64, error)
	Get(ctx context.Context, uid, id int64) (domain.ArticleDetail, error)
	PagePublic(ctx context.Context, page domain.Page, isTop bool) ([]domain.Article, int64, error)
	PagePreviewByCategory(ctx context.Context, categoryId int64, page domain.Page) ([]domain.Article, int64, error)
	PagePreviewByTags(ctx context.Context, tagIds []int64, page domain.Page) ([]domain.Article, int64, error)
	GetBackground(ctx context.Context, id int64) (domain.Article, error)
	PageBackground(ctx context.Context, page domain.Page, q domain.ArticleQuery) ([]domain.Article, int64, error)
	UploadImage(ctx context.Context, filename string, data io.Reader) (string, error)
	Like(ctx context.Context, uid, id int64, like bool) (bool, error)
	UpdateIsTop(ctx context.Context, id int64, isTop bool) error
	UpdateIsDeleted(ctx context.Context, id int64, isDeleted bool) error
	Save(ctx context.Context, art domain.Article, categoryName string, tagNames []string) (int64, error)
	Delete(ctx context.Context, ids []int64) (int64, error)
	PageSearchTags(ctx context.Context, keywords string, page domain.Page) ([]domain.Tag, map[int64]int64, int64, error)
}

type articleService struct {
	repo      repository.ArticleRepository
	webCfgSvc WebConfigService
	producer  events.Producer
	uploader  storage.Provider
	l         logger.Logger
}

func NewArticleService(repo repository.ArticleRepository,
	webCfgSvc WebConfigService,
	producer events.Producer,
	uploader storage.Provider,
	l logger.Logger) ArticleService {
	return &articleService{
		repo:      repo,
		webCfgSvc: webCfgSvc,
		producer:  producer,
		uploader:  uploader,
		l:         l,
	}
}

func (svc *articleService) ListSearch(ctx context.Context, keywords string) ([]domain.Article, error) {
	return svc.repo.Search(ctx, keywords)
}

func (svc *articleService) PageArchives(ctx context.Context, page domain.Page) ([]domain.Article, int64, error) {
	arts, total, err := svc.repo.PageArchives(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, total); err != nil {
		return nil, 0, err
	}
	return arts, total, nil
}

func (svc *articleService) Get(ctx context.Context, uid, id int64) (domain.ArticleDetail, error) {
	art, err := svc.repo.GetById(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return domain.ArticleDetail{}, fmt.Errorf("id为%d的文章不存在", id)
		}
		return domain.ArticleDetail{}, err
	}
	// 公开详情页不暴露未发布和已删除的文章
	if art.Status != domain.ArticleStatusPublic || art.IsDeleted {
		return domain.ArticleDetail{}, fmt.Errorf("id为%d的文章不存在", id)
	}

	arts, err := NewArticleEnricher(svc.repo, []domain.Article{art}).
		WithCategory().WithTags().WithHotIndex().
		Run(ctx)
	if err != nil {
		return domain.ArticleDetail{}, err
	}
	detail := domain.ArticleDetail{Article: arts[0]}

	prev, err := svc.repo.Prev(ctx, id)
	switch {
	case err == nil:
		detail.Prev = &prev
	case !errors.Is(err, repository.ErrArticleNotFound):
		return domain.ArticleDetail{}, err
	}
	next, err := svc.repo.Next(ctx, id)
	switch {
	case err == nil:
		detail.Next = &next
	case !errors.Is(err, repository.ErrArticleNotFound):
		return domain.ArticleDetail{}, err
	}

	detail.Newest, err = svc.repo.Newest(ctx, newestLimit)
	if err != nil {
		return domain.ArticleDetail{}, err
	}
	detail.Related, err = svc.repo.Related(ctx, id, relatedLimit)
	if err != nil {
		return domain.ArticleDetail{}, err
	}

	// 阅读量走消息队列异步累加，不阻塞详情页
	go func() {
		newCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		er := svc.producer.ProduceReadEvent(newCtx, events.ReadEvent{
			Uid: uid,
			Aid: id,
		})
		if er != nil {
			svc.l.Error("发送阅读事件失败",
				logger.Int64("uid", uid),
				logger.Int64("aid", id),
				logger.Error(er))
		}
	}()
	return detail, nil
}

func (svc *articleService) PagePublic(ctx context.Context, page domain.Page, isTop bool) ([]domain.Article, int64, error) {
	arts, total, err := svc.repo.PagePublic(ctx, isTop, page)
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, total); err != nil {
		return nil, 0, err
	}
	arts, err = NewArticleEnricher(svc.repo, arts).
		WithCategory().WithTags().
		Run(ctx)
	if err != nil {
		return nil, 0, err
	}
	return arts, total, nil
}

func (svc *articleService) PagePreviewByCategory(ctx context.Context, categoryId int64, page domain.Page) ([]domain.Article, int64, error) {
	arts, total, err := svc.repo.PageByCategory(ctx, categoryId, page)
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, total); err != nil {
		return nil, 0, err
	}
	arts, err = NewArticleEnricher(svc.repo, arts).
		WithCategory().WithTags().
		Run(ctx)
	if err != nil {
		return nil, 0, err
	}
	return arts, total, nil
}

func (svc *articleService) PagePreviewByTags(ctx context.Context, tagIds []int64, page domain.Page) ([]domain.Article, int64, error) {
	arts, total, err := svc.repo.PageByTagIds(ctx, tagIds, page)
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, total); err != nil {
		return nil, 0, err
	}
	arts, err = NewArticleEnricher(svc.repo, arts).
		WithCategory().WithTags().
		Run(ctx)
	if err != nil {
		return nil, 0, err
	}
	return arts, total, nil
}

func (svc *articleService) GetBackground(ctx context.Context, id int64) (domain.Article, error) {
	art, err := svc.repo.GetById(ctx, id)
	if errors.Is(err, repository.ErrArticleNotFound) {
		return domain.Article{}, fmt.Errorf("id为%d的文章不存在", id)
	}
	if err != nil {
		return domain.Article{}, err
	}
	arts, err := NewArticleEnricher(svc.repo, []domain.Article{art}).
		WithCategory().WithTags().
		Run(ctx)
	if err != nil {
		return domain.Article{}, err
	}
	return arts[0], nil
}

func (svc *articleService) PageBackground(ctx context.Context, page domain.Page, q domain.ArticleQuery) ([]domain.Article, int64, error) {
	arts, total, err := svc.repo.PageBackground(ctx, q, page)
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, total); err != nil {
		return nil, 0, err
	}
	arts, err = NewArticleEnricher(svc.repo, arts).
		WithCategory().WithTags().WithHotIndex().
		Run(ctx)
	if err != nil {
		return nil, 0, err
	}
	return arts, total, nil
}

func (svc *articleService) UploadImage(ctx context.Context, filename string, data io.Reader) (string, error) {
	return svc.uploader.Upload(ctx, "article", filename, data)
}

// Like 幂等的点赞开关，返回本次操作是否真的生效。
// 重复点赞和重复取消都不产生额外写入，直接返回 false
func (svc *articleService) Like(ctx context.Context, uid, id int64, like bool) (bool, error) {
	liked, err := svc.repo.Liked(ctx, id, uid)
	if err != nil {
		return false, err
	}
	if like == liked {
		return false, nil
	}
	if like {
		err = svc.repo.IncrLike(ctx, id, uid)
	} else {
		err = svc.repo.DecrLike(ctx, id, uid)
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (svc *articleService) UpdateIsTop(ctx context.Context, id int64, isTop bool) error {
	return svc.repo.UpdateIsTop(ctx, id, isTop)
}

func (svc *articleService) UpdateIsDeleted(ctx context.Context, id int64, isDeleted bool) error {
	return svc.repo.UpdateIsDeleted(ctx, id, isDeleted)
}

func (svc *articleService) Save(ctx context.Context, art domain.Article,
	categoryName string, tagNames []string) (int64, error) {
	if art.Cover == "" {
		cover, err := svc.webCfgSvc.ArticleCover(ctx)
		if err != nil {
			return 0, err
		}
		art.Cover = cover
	}
	id, err := svc.repo.Save(ctx, art, categoryName, tagNames)
	if err != nil {
		return 0, err
	}
	if art.IsTop {
		err = svc.repo.UpdateIsTop(ctx, id, true)
		if err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (svc *articleService) Delete(ctx context.Context, ids []int64) (int64, error) {
	return svc.repo.DeleteByIds(ctx, ids)
}

func (svc *articleService) PageSearchTags(ctx context.Context, keywords string,
	page domain.Page) ([]domain.Tag, map[int64]int64, int64, error) {
	tags, total, err := svc.repo.PageTags(ctx, keywords, page)
	if err != nil {
		return nil, nil, 0, err
	}
	if err := checkPage(page, total); err != nil {
		return nil, nil, 0, err
	}
	tagIds := make([]int64, 0, len(tags))
	for _, t := range tags {
		tagIds = append(tagIds, t.Id)
	}
	counts, err := svc.repo.TagArticleCounts(ctx, tagIds)
	if err != nil {
		return nil, nil, 0, err
	}
	return tags, counts, total, nil
}

// checkPage 页码落在总数之外时报错，第一页永远合法
func checkPage(page domain.Page, total int64) error {
	if page.Offset() > 0 && page.Offset() >= total {
		return repository.ErrPageOutOfRange
	}
	return nil
}
