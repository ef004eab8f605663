package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrDataNotFound 通用的数据没找到错误
	ErrDataNotFound = gorm.ErrRecordNotFound
)

// statusPublic 公开状态，和 domain.ArticleStatusPublic 对应
const statusPublic uint8 = 2

// Article 文章表
type Article struct {
	Id            int64  `gorm:"primaryKey,autoIncrement"`
	UserId        int64  `gorm:"index"`
	CategoryId    int64  `gorm:"index"`
	Title         string `gorm:"type:varchar(256)"`
	ContentDigest string `gorm:"type:varchar(512)"`
	Content       string `gorm:"type:BLOB"`
	Cover         string `gorm:"type:varchar(512)"`
	Type          uint8
	Status        uint8 `gorm:"default:1"`
	IsTop         bool
	IsDeleted     bool
	ViewCount     int64
	LikeCount     int64
	Ctime         int64
	Utime         int64
}

// Category 分类表
type Category struct {
	Id    int64  `gorm:"primaryKey,autoIncrement"`
	Name  string `gorm:"type:varchar(64);unique"`
	Ctime int64
	Utime int64
}

// Tag 标签表
type Tag struct {
	Id    int64  `gorm:"primaryKey,autoIncrement"`
	Name  string `gorm:"type:varchar(64);unique"`
	Ctime int64
	Utime int64
}

// ArticleTag 文章与标签的多对多映射表
// ArticleCount 是 GROUP BY tag_id 统计出来的聚合列，只读，
// 任何插入和更新语句都不能带上它
type ArticleTag struct {
	Id           int64 `gorm:"primaryKey,autoIncrement"`
	ArticleId    int64 `gorm:"uniqueIndex:aid_tid"`
	TagId        int64 `gorm:"uniqueIndex:aid_tid"`
	ArticleCount int64 `gorm:"<-:false;-:migration"`
}

func (ArticleTag) TableName() string {
	return "article_mtm_tags"
}

// ArticleTagDetail 文章 id 到标签的联表查询结果
type ArticleTagDetail struct {
	ArticleId int64  `gorm:"column:article_id"`
	TagId     int64  `gorm:"column:tag_id"`
	TagName   string `gorm:"column:tag_name"`
}

type ArticleDAO interface {
	GetById(ctx context.Context, id int64) (Article, error)
	Search(ctx context.Context, keywords string) ([]Article, error)
	PageArchives(ctx context.Context, offset, limit int64) ([]Article, int64, error)
	// Prev 比 id 大的里面最小的一篇（向上最近）
	Prev(ctx context.Context, id int64) (Article, error)
	// Next 比 id 小的里面最大的一篇（向下最近）
	Next(ctx context.Context, id int64) (Article, error)
	Newest(ctx context.Context, limit int) ([]Article, error)
	RelatedIds(ctx context.Context, id int64, limit int) ([]int64, error)
	ListPubByIds(ctx context.Context, ids []int64, limit int) ([]Article, error)
	ListPub(ctx context.Context, offset, limit int) ([]Article, error)
	PagePublic(ctx context.Context, isTop bool, offset, limit int64) ([]Article, int64, error)
	PageByCategory(ctx context.Context, categoryId, offset, limit int64) ([]Article, int64, error)
	PageByTagIds(ctx context.Context, tagIds []int64, offset, limit int64) ([]Article, int64, error)
	PageBackground(ctx context.Context, q BackgroundQuery, offset, limit int64) ([]Article, int64, error)

	Save(ctx context.Context, art Article, categoryName string, tagNames []string) (int64, error)
	UpdateIsTop(ctx context.Context, id int64, isTop bool) error
	UpdateIsDeleted(ctx context.Context, id int64, isDeleted bool) error
	DeleteByIds(ctx context.Context, ids []int64) (int64, error)
	IncrLikeCnt(ctx context.Context, id, delta int64) error
	BatchIncrViewCnt(ctx context.Context, ids []int64) error

	CategoriesByIds(ctx context.Context, ids []int64) ([]Category, error)
	TagsByArticleIds(ctx context.Context, ids []int64) ([]ArticleTagDetail, error)
	TagArticleCounts(ctx context.Context, tagIds []int64) ([]ArticleTag, error)
	ArticleIdsByTagIds(ctx context.Context, tagIds []int64) ([]int64, error)
	PageTags(ctx context.Context, keywords string, offset, limit int64) ([]Tag, int64, error)
}

// BackgroundQuery 后台列表的条件组合，指针为 nil 表示不加该条件
type BackgroundQuery struct {
	CategoryId int64
	ArticleIds []int64
	FilterIds  bool
	Status     *uint8
	Type       *uint8
	IsDeleted  *bool
	Keywords   string
}

type GORMArticleDAO struct {
	db *gorm.DB
}

func NewGORMArticleDAO(db *gorm.DB) ArticleDAO {
	return &GORMArticleDAO{
		db: db,
	}
}

// visible 公开读路径的统一条件：已发布且未删除
func (dao *GORMArticleDAO) visible(ctx context.Context) *gorm.DB {
	return dao.db.WithContext(ctx).Model(&Article{}).
		Where("status = ? AND is_deleted = ?", statusPublic, false)
}

func (dao *GORMArticleDAO) GetById(ctx context.Context, id int64) (Article, error) {
	var art Article
	err := dao.db.WithContext(ctx).First(&art, "id = ?", id).Error
	return art, err
}

func (dao *GORMArticleDAO) Search(ctx context.Context, keywords string) ([]Article, error) {
	var arts []Article
	query := dao.visible(ctx).
		Select("id", "title", "status", "content_digest")
	if keywords != "" {
		like := "%" + keywords + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	err := query.Limit(30).Find(&arts).Error
	return arts, err
}

func (dao *GORMArticleDAO) PageArchives(ctx context.Context, offset, limit int64) ([]Article, int64, error) {
	var (
		arts  []Article
		total int64
	)
	err := dao.visible(ctx).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	err = dao.visible(ctx).
		Select("id", "title", "ctime").
		Order("ctime DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&arts).Error
	return arts, total, err
}

// outlineCols 上一篇/下一篇/最新/相关推荐用到的列
var outlineCols = []string{"id", "title", "cover", "ctime"}

func (dao *GORMArticleDAO) Prev(ctx context.Context, id int64) (Article, error) {
	var art Article
	err := dao.visible(ctx).
		Select(outlineCols).
		Where("id > ?", id).
		Order("id ASC").Limit(1).
		First(&art).Error
	return art, err
}

func (dao *GORMArticleDAO) Next(ctx context.Context, id int64) (Article, error) {
	var art Article
	err := dao.visible(ctx).
		Select(outlineCols).
		Where("id < ?", id).
		Order("id DESC").Limit(1).
		First(&art).Error
	return art, err
}

func (dao *GORMArticleDAO) Newest(ctx context.Context, limit int) ([]Article, error) {
	var arts []Article
	err := dao.visible(ctx).
		Select(outlineCols).
		Order("id DESC").Limit(limit).
		Find(&arts).Error
	return arts, err
}

// RelatedIds 跟这篇文章共享至少一个标签的其它文章 id
func (dao *GORMArticleDAO) RelatedIds(ctx context.Context, id int64, limit int) ([]int64, error) {
	var ids []int64
	sub := dao.db.WithContext(ctx).Model(&ArticleTag{}).
		Select("tag_id").
		Where("article_id = ?", id)
	err := dao.db.WithContext(ctx).Model(&ArticleTag{}).
		Distinct("article_id").
		Where("tag_id IN (?) AND article_id != ?", sub, id).
		Limit(limit).
		Pluck("article_id", &ids).Error
	return ids, err
}

func (dao *GORMArticleDAO) ListPubByIds(ctx context.Context, ids []int64, limit int) ([]Article, error) {
	var arts []Article
	err := dao.visible(ctx).
		Select(outlineCols).
		Where("id IN ?", ids).
		Order("id DESC").Limit(limit).
		Find(&arts).Error
	return arts, err
}

// ListPub 热度计算用的分批遍历，按更新时间倒序
func (dao *GORMArticleDAO) ListPub(ctx context.Context, offset, limit int) ([]Article, error) {
	var arts []Article
	err := dao.visible(ctx).
		Select("id", "view_count", "like_count", "utime").
		Order("utime DESC").
		Offset(offset).Limit(limit).
		Find(&arts).Error
	return arts, err
}

func (dao *GORMArticleDAO) PagePublic(ctx context.Context, isTop bool, offset, limit int64) ([]Article, int64, error) {
	var (
		arts  []Article
		total int64
	)
	base := func() *gorm.DB {
		return dao.visible(ctx).Where("is_top = ?", isTop)
	}
	err := base().Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	err = base().
		Select("id", "category_id", "title", "content_digest", "cover", "type", "is_top", "ctime").
		Order("id DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&arts).Error
	return arts, total, err
}

func (dao *GORMArticleDAO) PageByCategory(ctx context.Context, categoryId, offset, limit int64) ([]Article, int64, error) {
	var (
		arts  []Article
		total int64
	)
	base := func() *gorm.DB {
		return dao.visible(ctx).Where("category_id = ?", categoryId)
	}
	err := base().Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	err = base().Offset(int(offset)).Limit(int(limit)).Find(&arts).Error
	return arts, total, err
}

func (dao *GORMArticleDAO) PageByTagIds(ctx context.Context, tagIds []int64, offset, limit int64) ([]Article, int64, error) {
	ids, err := dao.ArticleIdsByTagIds(ctx, tagIds)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []Article{}, 0, nil
	}
	var (
		arts  []Article
		total int64
	)
	base := func() *gorm.DB {
		return dao.visible(ctx).Where("id IN ?", ids)
	}
	err = base().Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	err = base().Offset(int(offset)).Limit(int(limit)).Find(&arts).Error
	return arts, total, err
}

func (dao *GORMArticleDAO) PageBackground(ctx context.Context, q BackgroundQuery, offset, limit int64) ([]Article, int64, error) {
	base := func() *gorm.DB {
		query := dao.db.WithContext(ctx).Model(&Article{})
		if q.CategoryId > 0 {
			query = query.Where("category_id = ?", q.CategoryId)
		}
		if q.FilterIds {
			query = query.Where("id IN ?", q.ArticleIds)
		}
		if q.Status != nil {
			query = query.Where("status = ?", *q.Status)
		}
		if q.Type != nil {
			query = query.Where("type = ?", *q.Type)
		}
		if q.IsDeleted != nil {
			query = query.Where("is_deleted = ?", *q.IsDeleted)
		}
		if q.Keywords != "" {
			like := "%" + q.Keywords + "%"
			query = query.Where("title LIKE ? OR content LIKE ?", like, like)
		}
		return query
	}
	var total int64
	err := base().Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	var arts []Article
	err = base().
		Select("id", "category_id", "title", "cover", "status", "type",
			"is_top", "is_deleted", "view_count", "like_count", "ctime").
		Order("id DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&arts).Error
	return arts, total, err
}

// Save 在一个事务里保存分类、文章和标签映射。
// 文章已存在时做目标列更新，不整行覆盖
func (dao *GORMArticleDAO) Save(ctx context.Context, art Article, categoryName string, tagNames []string) (int64, error) {
	id := art.Id
	err := dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()

		// 分类按名字兜底创建
		var category Category
		err := tx.Where("name = ?", categoryName).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = Category{Name: categoryName, Ctime: now, Utime: now}
			err = tx.Create(&category).Error
		}
		if err != nil {
			return err
		}
		art.CategoryId = category.Id

		if id == 0 {
			art.Ctime = now
			art.Utime = now
			if err := tx.Create(&art).Error; err != nil {
				return err
			}
			id = art.Id
		} else {
			res := tx.Model(&Article{}).Where("id = ?", id).
				Updates(map[string]any{
					"title":          art.Title,
					"content":        art.Content,
					"content_digest": art.ContentDigest,
					"cover":          art.Cover,
					"type":           art.Type,
					"status":         art.Status,
					"category_id":    art.CategoryId,
					"utime":          now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrDataNotFound
			}
		}

		// 标签兜底创建
		tagIds := make([]int64, 0, len(tagNames))
		for _, name := range tagNames {
			var tag Tag
			err := tx.Where("name = ?", name).First(&tag).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = Tag{Name: name, Ctime: now, Utime: now}
				err = tx.Create(&tag).Error
			}
			if err != nil {
				return err
			}
			tagIds = append(tagIds, tag.Id)
		}

		// 重建映射。ArticleCount 是只读聚合列，插入语句不会带上它
		err = tx.Where("article_id = ?", id).Delete(&ArticleTag{}).Error
		if err != nil {
			return err
		}
		mappings := make([]ArticleTag, 0, len(tagIds))
		for _, tid := range tagIds {
			mappings = append(mappings, ArticleTag{ArticleId: id, TagId: tid})
		}
		if len(mappings) == 0 {
			return nil
		}
		return tx.Create(&mappings).Error
	})
	return id, err
}

// UpdateIsTop 置顶。整库置顶数量不超过 3：
// 目标文章已在置顶集合里并且余下数量小于 3 时直接接受；
// 否则把按更新时间倒序第 2 名之后的全部取消置顶，再给目标置顶。
// 读和写在同一个事务里，保证上限对外不可见地被打破
func (dao *GORMArticleDAO) UpdateIsTop(ctx context.Context, id int64, isTop bool) error {
	now := time.Now().UnixMilli()
	return dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isTop {
			var topped []Article
			err := tx.Model(&Article{}).
				Select("id", "utime").
				Where("is_top = ? AND is_deleted = ?", true, false).
				Order("utime DESC").
				Find(&topped).Error
			if err != nil {
				return err
			}
			skip, demote := topDemotions(topped, id)
			if skip {
				return nil
			}
			if len(demote) > 0 {
				err = tx.Model(&Article{}).
					Where("id IN ?", demote).
					Updates(map[string]any{
						"is_top": false,
						"utime":  now,
					}).Error
				if err != nil {
					return err
				}
			}
		}
		return tx.Model(&Article{}).Where("id = ?", id).
			Updates(map[string]any{
				"is_top": isTop,
				"utime":  now,
			}).Error
	})
}

// topDemotions 根据当前置顶集合（按更新时间倒序）决定是否可以直接返回，
// 以及需要取消置顶的文章 id
func topDemotions(topped []Article, target int64) (skip bool, demote []int64) {
	rest := make([]Article, 0, len(topped))
	already := false
	for _, art := range topped {
		if art.Id == target {
			already = true
			continue
		}
		rest = append(rest, art)
	}
	// 已置顶且算上自己不超上限，无需任何写入
	if already && len(rest) < 3 {
		return true, nil
	}
	if len(rest) >= 3 {
		for _, art := range rest[2:] {
			demote = append(demote, art.Id)
		}
	}
	return false, demote
}

func (dao *GORMArticleDAO) UpdateIsDeleted(ctx context.Context, id int64, isDeleted bool) error {
	return dao.db.WithContext(ctx).Model(&Article{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_deleted": isDeleted,
			"utime":      time.Now().UnixMilli(),
		}).Error
}

// DeleteByIds 批量软删除。只命中还没删掉的行，对重试幂等；
// 确有行被删掉时才级联清理标签映射，两步在同一个事务里
func (dao *GORMArticleDAO) DeleteByIds(ctx context.Context, ids []int64) (int64, error) {
	var affected int64
	err := dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Article{}).
			Where("id IN ? AND is_deleted = ?", ids, false).
			Updates(map[string]any{
				"is_deleted": true,
				"utime":      time.Now().UnixMilli(),
			})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("article_id IN ?", ids).Delete(&ArticleTag{}).Error
	})
	return affected, err
}

func (dao *GORMArticleDAO) IncrLikeCnt(ctx context.Context, id, delta int64) error {
	return dao.db.WithContext(ctx).Model(&Article{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"like_count": gorm.Expr("`like_count` + ?", delta),
			"utime":      time.Now().UnixMilli(),
		}).Error
}

func (dao *GORMArticleDAO) BatchIncrViewCnt(ctx context.Context, ids []int64) error {
	now := time.Now().UnixMilli()
	// 同一篇文章可能在一批里出现多次，按出现次数累加
	counts := make(map[int64]int64, len(ids))
	for _, id := range ids {
		counts[id]++
	}
	return dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, cnt := range counts {
			err := tx.Model(&Article{}).
				Where("id = ?", id).
				Updates(map[string]any{
					"view_count": gorm.Expr("`view_count` + ?", cnt),
					"utime":      now,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (dao *GORMArticleDAO) CategoriesByIds(ctx context.Context, ids []int64) ([]Category, error) {
	var categories []Category
	err := dao.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&categories).Error
	return categories, err
}

func (dao *GORMArticleDAO) TagsByArticleIds(ctx context.Context, ids []int64) ([]ArticleTagDetail, error) {
	var details []ArticleTagDetail
	err := dao.db.WithContext(ctx).Model(&ArticleTag{}).
		Select("article_mtm_tags.article_id AS article_id, tags.id AS tag_id, tags.name AS tag_name").
		Joins("JOIN tags ON tags.id = article_mtm_tags.tag_id").
		Where("article_mtm_tags.article_id IN ?", ids).
		Scan(&details).Error
	return details, err
}

// TagArticleCounts 一条分组查询算出每个标签关联的文章数
func (dao *GORMArticleDAO) TagArticleCounts(ctx context.Context, tagIds []int64) ([]ArticleTag, error) {
	var counts []ArticleTag
	err := dao.db.WithContext(ctx).Model(&ArticleTag{}).
		Select("tag_id, COUNT(article_id) AS article_count").
		Where("tag_id IN ?", tagIds).
		Group("tag_id").
		Scan(&counts).Error
	return counts, err
}

func (dao *GORMArticleDAO) ArticleIdsByTagIds(ctx context.Context, tagIds []int64) ([]int64, error) {
	var ids []int64
	err := dao.db.WithContext(ctx).Model(&ArticleTag{}).
		Distinct("article_id").
		Where("tag_id IN ?", tagIds).
		Pluck("article_id", &ids).Error
	return ids, err
}

func (dao *GORMArticleDAO) PageTags(ctx context.Context, keywords string, offset, limit int64) ([]Tag, int64, error) {
	base := func() *gorm.DB {
		query := dao.db.WithContext(ctx).Model(&Tag{})
		if keywords != "" {
			query = query.Where("name LIKE ?", "%"+keywords+"%")
		}
		return query
	}
	var total int64
	err := base().Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	var tags []Tag
	err = base().
		Order("id DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&tags).Error
	return tags, total, err
}
