package domain

import "time"

// Article 文章领域模型
// Category/Tags/HotIndex 是装饰字段，由 service 层的批量装配流程填充
type Article struct {
	Id            int64
	Title         string
	Content       string
	ContentDigest string
	Cover         string
	Type          uint8
	Status        ArticleStatus
	IsTop         bool
	IsDeleted     bool
	UserId        int64
	CategoryId    int64

	ViewCount int64
	LikeCount int64

	Ctime time.Time
	Utime time.Time

	Category Category
	Tags     []Tag
	HotIndex float64
}

// Abstract 取内容的前 100 个字符作为摘要
func (a Article) Abstract() string {
	cs := []rune(a.Content)
	if len(cs) < 100 {
		return a.Content
	}
	return string(cs[:100])
}

type ArticleStatus uint8

func (s ArticleStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	// ArticleStatusUnknown 未知状态
	ArticleStatusUnknown ArticleStatus = iota
	// ArticleStatusDraft 草稿
	ArticleStatusDraft
	// ArticleStatusPublic 公开
	ArticleStatusPublic
	// ArticleStatusPrivate 仅自己可见
	ArticleStatusPrivate
)

type Category struct {
	Id   int64
	Name string
}

// Tag 标签。ArticleCount 是按 tag_id 分组统计出来的聚合值，只读
type Tag struct {
	Id           int64
	Name         string
	ArticleCount int64
}

// ArticleDetail 文章详情页的聚合结果。
// Prev/Next 为 nil 表示已经到头
type ArticleDetail struct {
	Article
	Prev    *Article
	Next    *Article
	Newest  []Article
	Related []Article
}

// ArticleQuery 后台文章列表的筛选条件，指针字段为 nil 表示不过滤
type ArticleQuery struct {
	CategoryId int64
	TagId      int64
	Status     *uint8
	Type       *uint8
	IsDeleted  *bool
	Keywords   string
}
