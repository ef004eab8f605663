package repository

import (
	"context"
	"errors"
	"time"

	"blog/internal/domain"
	"blog/internal/repository/cache"
	"blog/internal/repository/dao"
)

var (
	ErrArticleNotFound = dao.ErrDataNotFound
	// ErrPageOutOfRange 页码超出总页数
	ErrPageOutOfRange = errors.New("页码超出范围")
)

type ArticleRepository interface {
	GetById(ctx context.Context, id int64) (domain.Article, error)
	Search(ctx context.Context, keywords string) ([]domain.Article, error)
	PageArchives(ctx context.Context, page domain.Page) ([]domain.Article, int64, error)
	Prev(ctx context.Context, id int64) (domain.Article, error)
	Next(ctx context.Context, id int64) (domain.Article, error)
	Newest(ctx context.Context, limit int) ([]domain.Article, error)
	Related(ctx context.Context, id int64, limit int) ([]domain.Article, error)
	ListPub(ctx context.Context, offset, limit int) ([]domain.Article, error)
	PagePublic(ctx context.Context, isTop bool, page domain.Page) ([]domain.Article, int64, error)
	PageByCategory(ctx context.Context, categoryId int64, page domain.Page) ([]domain.Article, int64, error)
	PageByTagIds(ctx context.Context, tagIds []int64, page domain.Page) ([]domain.Article, int64, error)
	PageBackground(ctx context.Context, q domain.ArticleQuery, page domain.Page) ([]domain.Article, int64, error)

	Save(ctx context.Context, art domain.Article, categoryName string, tagNames []string) (int64, error)
	UpdateIsTop(ctx context.Context, id int64, isTop bool) error
	UpdateIsDeleted(ctx context.Context, id int64, isDeleted bool) error
	DeleteByIds(ctx context.Context, ids []int64) (int64, error)
	BatchIncrViewCnt(ctx context.Context, ids []int64) error

	Liked(ctx context.Context, aid, uid int64) (bool, error)
	IncrLike(ctx context.Context, aid, uid int64) error
	DecrLike(ctx context.Context, aid, uid int64) error

	CategoriesByIds(ctx context.Context, ids []int64) (map[int64]domain.Category, error)
	TagsByArticleIds(ctx context.Context, ids []int64) (map[int64][]domain.Tag, error)
	HotScores(ctx context.Context, ids []int64) (map[int64]float64, error)
	PageTags(ctx context.Context, keywords string, page domain.Page) ([]domain.Tag, int64, error)
	TagArticleCounts(ctx context.Context, tagIds []int64) (map[int64]int64, error)
}

type CachedArticleRepository struct {
	dao       dao.ArticleDAO
	likeCache cache.LikeCache
	hotCache  cache.HotCache
}

func NewCachedArticleRepository(d dao.ArticleDAO,
	likeCache cache.LikeCache, hotCache cache.HotCache) ArticleRepository {
	return &CachedArticleRepository{
		dao:       d,
		likeCache: likeCache,
		hotCache:  hotCache,
	}
}

func (repo *CachedArticleRepository) GetById(ctx context.Context, id int64) (domain.Article, error) {
	art, err := repo.dao.GetById(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	return repo.toDomain(art), nil
}

func (repo *CachedArticleRepository) Search(ctx context.Context, keywords string) ([]domain.Article, error) {
	arts, err := repo.dao.Search(ctx, keywords)
	if err != nil {
		return nil, err
	}
	return repo.toDomains(arts), nil
}

func (repo *CachedArticleRepository) PageArchives(ctx context.Context, page domain.Page) ([]domain.Article, int64, error) {
	arts, total, err := repo.dao.PageArchives(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}
	return repo.toDomains(arts), total, nil
}

func (repo *CachedArticleRepository) Prev(ctx context.Context, id int64) (domain.Article, error) {
	art, err := repo.dao.Prev(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	return repo.toDomain(art), nil
}

func (repo *CachedArticleRepository) Next(ctx context.Context, id int64) (domain.Article, error) {
	art, err := repo.dao.Next(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	return repo.toDomain(art), nil
}

func (repo *CachedArticleRepository) Newest(ctx context.Context, limit int) ([]domain.Article, error) {
	arts, err := repo.dao.Newest(ctx, limit)
	if err != nil {
		return nil, err
	}
	return repo.toDomains(arts), nil
}

func (repo *CachedArticleRepository) Related(ctx context.Context, id int64, limit int) ([]domain.Article, error) {
	ids, err := repo.dao.RelatedIds(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Article{}, nil
	}
	arts, err := repo.dao.ListPubByIds(ctx, ids, limit)
	if err != nil {
		return nil, err
	}
	return repo.toDomains(arts), nil
}

func (repo *CachedArticleRepository) ListPub(ctx context.Context, offset, limit int) ([]domain.Article, error) {
	arts, err := repo.dao.ListPub(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return repo.toDomains(arts), nil
}

func (repo *CachedArticleRepository) PagePublic(ctx context.Context, isTop bool, page domain.Page) ([]domain.Article, int64, error) {
	arts, total, err := repo.dao.PagePublic(ctx, isTop, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}
	return repo.toDomains(arts), total, nil
}

func (repo *CachedArticleRepository) PageByCategory(ctx context.Context, categoryId int64, page domain.Page) ([]domain.Article, int64, error) {
	arts, total, err := repo.dao.PageByCategory(ctx, categoryId, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}
	return repo.toDomains(arts), total, nil
}

func (repo *CachedArticleRepository) PageByTagIds(ctx context.Context, tagIds []int64, page domain.Page) ([]domain.Article, int64, error) {
	arts, total, err := repo.dao.PageByTagIds(ctx, tagIds, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}
	return repo.toDomains(arts), total, nil
}

func (repo *CachedArticleRepository) PageBackground(ctx context.Context, q domain.ArticleQuery, page domain.Page) ([]domain.Article, int64, error) {
	bq := dao.BackgroundQuery{
		CategoryId: q.CategoryId,
		Status:     q.Status,
		Type:       q.Type,
		IsDeleted:  q.IsDeleted,
		Keywords:   q.Keywords,
	}
	// 按标签筛选先换算成文章 id 集合
	if q.TagId > 0 {
		ids, err := repo.dao.ArticleIdsByTagIds(ctx, []int64{q.TagId})
		if err != nil {
			return nil, 0, err
		}
		if len(ids) == 0 {
			return []domain.Article{}, 0, nil
		}
		bq.FilterIds = true
		bq.ArticleIds = ids
	}
	arts, total, err := repo.dao.PageBackground(ctx, bq, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}
	return repo.toDomains(arts), total, nil
}

func (repo *CachedArticleRepository) Save(ctx context.Context, art domain.Article,
	categoryName string, tagNames []string) (int64, error) {
	return repo.dao.Save(ctx, repo.toEntity(art), categoryName, tagNames)
}

func (repo *CachedArticleRepository) UpdateIsTop(ctx context.Context, id int64, isTop bool) error {
	return repo.dao.UpdateIsTop(ctx, id, isTop)
}

func (repo *CachedArticleRepository) UpdateIsDeleted(ctx context.Context, id int64, isDeleted bool) error {
	return repo.dao.UpdateIsDeleted(ctx, id, isDeleted)
}

func (repo *CachedArticleRepository) DeleteByIds(ctx context.Context, ids []int64) (int64, error) {
	return repo.dao.DeleteByIds(ctx, ids)
}

func (repo *CachedArticleRepository) BatchIncrViewCnt(ctx context.Context, ids []int64) error {
	return repo.dao.BatchIncrViewCnt(ctx, ids)
}

func (repo *CachedArticleRepository) Liked(ctx context.Context, aid, uid int64) (bool, error) {
	return repo.likeCache.IsMember(ctx, aid, uid)
}

// IncrLike 先记成员再加计数，两步不是原子的。
// 中间失败时计数可能偏差一次，业务上能接受
func (repo *CachedArticleRepository) IncrLike(ctx context.Context, aid, uid int64) error {
	err := repo.likeCache.Add(ctx, aid, uid)
	if err != nil {
		return err
	}
	return repo.dao.IncrLikeCnt(ctx, aid, 1)
}

func (repo *CachedArticleRepository) DecrLike(ctx context.Context, aid, uid int64) error {
	err := repo.likeCache.Remove(ctx, aid, uid)
	if err != nil {
		return err
	}
	return repo.dao.IncrLikeCnt(ctx, aid, -1)
}

func (repo *CachedArticleRepository) CategoriesByIds(ctx context.Context, ids []int64) (map[int64]domain.Category, error) {
	if len(ids) == 0 {
		return map[int64]domain.Category{}, nil
	}
	categories, err := repo.dao.CategoriesByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	res := make(map[int64]domain.Category, len(categories))
	for _, c := range categories {
		res[c.Id] = domain.Category{
			Id:   c.Id,
			Name: c.Name,
		}
	}
	return res, nil
}

func (repo *CachedArticleRepository) TagsByArticleIds(ctx context.Context, ids []int64) (map[int64][]domain.Tag, error) {
	if len(ids) == 0 {
		return map[int64][]domain.Tag{}, nil
	}
	details, err := repo.dao.TagsByArticleIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	res := make(map[int64][]domain.Tag, len(ids))
	for _, d := range details {
		res[d.ArticleId] = append(res[d.ArticleId], domain.Tag{
			Id:   d.TagId,
			Name: d.TagName,
		})
	}
	return res, nil
}

func (repo *CachedArticleRepository) HotScores(ctx context.Context, ids []int64) (map[int64]float64, error) {
	return repo.hotCache.Scores(ctx, ids)
}

func (repo *CachedArticleRepository) PageTags(ctx context.Context, keywords string, page domain.Page) ([]domain.Tag, int64, error) {
	tags, total, err := repo.dao.PageTags(ctx, keywords, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}
	res := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		res = append(res, domain.Tag{
			Id:   t.Id,
			Name: t.Name,
		})
	}
	return res, total, nil
}

func (repo *CachedArticleRepository) TagArticleCounts(ctx context.Context, tagIds []int64) (map[int64]int64, error) {
	if len(tagIds) == 0 {
		return map[int64]int64{}, nil
	}
	counts, err := repo.dao.TagArticleCounts(ctx, tagIds)
	if err != nil {
		return nil, err
	}
	res := make(map[int64]int64, len(counts))
	for _, c := range counts {
		res[c.TagId] = c.ArticleCount
	}
	return res, nil
}

func (repo *CachedArticleRepository) toDomain(art dao.Article) domain.Article {
	return domain.Article{
		Id:            art.Id,
		Title:         art.Title,
		Content:       art.Content,
		ContentDigest: art.ContentDigest,
		Cover:         art.Cover,
		Type:          art.Type,
		Status:        domain.ArticleStatus(art.Status),
		IsTop:         art.IsTop,
		IsDeleted:     art.IsDeleted,
		UserId:        art.UserId,
		CategoryId:    art.CategoryId,
		ViewCount:     art.ViewCount,
		LikeCount:     art.LikeCount,
		Ctime:         time.UnixMilli(art.Ctime),
		Utime:         time.UnixMilli(art.Utime),
	}
}

func (repo *CachedArticleRepository) toDomains(arts []dao.Article) []domain.Article {
	res := make([]domain.Article, 0, len(arts))
	for _, art := range arts {
		res = append(res, repo.toDomain(art))
	}
	return res
}

func (repo *CachedArticleRepository) toEntity(art domain.Article) dao.Article {
	return dao.Article{
		Id:            art.Id,
		UserId:        art.UserId,
		CategoryId:    art.CategoryId,
		Title:         art.Title,
		Content:       art.Content,
		ContentDigest: art.ContentDigest,
		Cover:         art.Cover,
		Type:          art.Type,
		Status:        uint8(art.Status),
		IsTop:         art.IsTop,
		IsDeleted:     art.IsDeleted,
	}
}
