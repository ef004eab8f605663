package web

import (
	"blog/internal/domain"
)

// 每对领域对象和 VO 之间一个显式的转换函数，
// 转换用到的额外数据一律作为参数传入

type CategoryVO struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

type TagVO struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

type TagSearchVO struct {
	Id           int64  `json:"id"`
	Name         string `json:"name"`
	ArticleCount int64  `json:"articleCount"`
}

type ArticleSearchVO struct {
	Id            int64  `json:"id"`
	Title         string `json:"title"`
	ContentDigest string `json:"contentDigest"`
	Status        uint8  `json:"status"`
}

type ArchiveVO struct {
	Id    int64  `json:"id"`
	Title string `json:"title"`
	Ctime int64  `json:"ctime"`
}

// ArticleOutlineVO 上一篇/下一篇/最新/相关推荐的简要信息
type ArticleOutlineVO struct {
	Id    int64  `json:"id"`
	Title string `json:"title"`
	Cover string `json:"cover"`
	Ctime int64  `json:"ctime"`
}

// ArticleCardVO 首页文章卡片
type ArticleCardVO struct {
	Id            int64      `json:"id"`
	Title         string     `json:"title"`
	ContentDigest string     `json:"contentDigest"`
	Cover         string     `json:"cover"`
	Type          uint8      `json:"type"`
	IsTop         bool       `json:"isTop"`
	Category      CategoryVO `json:"category"`
	Tags          []TagVO    `json:"tags"`
	Ctime         int64      `json:"ctime"`
}

// ArticlePreviewVO 分类页和标签页的预览
type ArticlePreviewVO struct {
	Id       int64      `json:"id"`
	Title    string     `json:"title"`
	Cover    string     `json:"cover"`
	Category CategoryVO `json:"category"`
	Tags     []TagVO    `json:"tags"`
	Ctime    int64      `json:"ctime"`
}

type ArticleDetailVO struct {
	Id        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Cover     string     `json:"cover"`
	Type      uint8      `json:"type"`
	IsTop     bool       `json:"isTop"`
	Category  CategoryVO `json:"category"`
	Tags      []TagVO    `json:"tags"`
	ViewCount int64      `json:"viewCount"`
	LikeCount int64      `json:"likeCount"`
	HotIndex  float64    `json:"hotIndex"`
	Ctime     int64      `json:"ctime"`
	Utime     int64      `json:"utime"`

	Prev    *ArticleOutlineVO  `json:"prev"`
	Next    *ArticleOutlineVO  `json:"next"`
	Newest  []ArticleOutlineVO `json:"newest"`
	Related []ArticleOutlineVO `json:"related"`
}

// ArticleBackgroundVO 后台列表行
type ArticleBackgroundVO struct {
	Id        int64      `json:"id"`
	Title     string     `json:"title"`
	Cover     string     `json:"cover"`
	Status    uint8      `json:"status"`
	Type      uint8      `json:"type"`
	IsTop     bool       `json:"isTop"`
	IsDeleted bool       `json:"isDeleted"`
	ViewCount int64      `json:"viewCount"`
	LikeCount int64      `json:"likeCount"`
	HotIndex  float64    `json:"hotIndex"`
	Category  CategoryVO `json:"category"`
	Tags      []TagVO    `json:"tags"`
	Ctime     int64      `json:"ctime"`
}

// ArticleAdminVO 后台编辑页回显
type ArticleAdminVO struct {
	Id           int64    `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Cover        string   `json:"cover"`
	Status       uint8    `json:"status"`
	Type         uint8    `json:"type"`
	IsTop        bool     `json:"isTop"`
	CategoryName string   `json:"categoryName"`
	TagNames     []string `json:"tagNames"`
}

type RoleDigestVO struct {
	Id    int64  `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type RoleVO struct {
	Id          int64   `json:"id"`
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	IsDisabled  bool    `json:"isDisabled"`
	ResourceIds []int64 `json:"resourceIds"`
	Ctime       int64   `json:"ctime"`
}

type UserInfoVO struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Intro    string `json:"intro"`
	Website  string `json:"website"`
}

func toCategoryVO(c domain.Category) CategoryVO {
	return CategoryVO{
		Id:   c.Id,
		Name: c.Name,
	}
}

func toTagVOs(tags []domain.Tag) []TagVO {
	res := make([]TagVO, 0, len(tags))
	for _, t := range tags {
		res = append(res, TagVO{
			Id:   t.Id,
			Name: t.Name,
		})
	}
	return res
}

// toTagSearchVOs counts 是按 tag_id 分组统计出来的文章数
func toTagSearchVOs(tags []domain.Tag, counts map[int64]int64) []TagSearchVO {
	res := make([]TagSearchVO, 0, len(tags))
	for _, t := range tags {
		res = append(res, TagSearchVO{
			Id:           t.Id,
			Name:         t.Name,
			ArticleCount: counts[t.Id],
		})
	}
	return res
}

func toSearchVO(art domain.Article) ArticleSearchVO {
	return ArticleSearchVO{
		Id:            art.Id,
		Title:         art.Title,
		ContentDigest: art.ContentDigest,
		Status:        art.Status.ToUint8(),
	}
}

func toArchiveVO(art domain.Article) ArchiveVO {
	return ArchiveVO{
		Id:    art.Id,
		Title: art.Title,
		Ctime: art.Ctime.UnixMilli(),
	}
}

func toOutlineVO(art domain.Article) ArticleOutlineVO {
	return ArticleOutlineVO{
		Id:    art.Id,
		Title: art.Title,
		Cover: art.Cover,
		Ctime: art.Ctime.UnixMilli(),
	}
}

func toOutlineVOs(arts []domain.Article) []ArticleOutlineVO {
	res := make([]ArticleOutlineVO, 0, len(arts))
	for _, art := range arts {
		res = append(res, toOutlineVO(art))
	}
	return res
}

func toCardVO(art domain.Article) ArticleCardVO {
	return ArticleCardVO{
		Id:            art.Id,
		Title:         art.Title,
		ContentDigest: art.ContentDigest,
		Cover:         art.Cover,
		Type:          art.Type,
		IsTop:         art.IsTop,
		Category:      toCategoryVO(art.Category),
		Tags:          toTagVOs(art.Tags),
		Ctime:         art.Ctime.UnixMilli(),
	}
}

func toPreviewVO(art domain.Article) ArticlePreviewVO {
	return ArticlePreviewVO{
		Id:       art.Id,
		Title:    art.Title,
		Cover:    art.Cover,
		Category: toCategoryVO(art.Category),
		Tags:     toTagVOs(art.Tags),
		Ctime:    art.Ctime.UnixMilli(),
	}
}

func toDetailVO(detail domain.ArticleDetail) ArticleDetailVO {
	vo := ArticleDetailVO{
		Id:        detail.Id,
		Title:     detail.Title,
		Content:   detail.Content,
		Cover:     detail.Cover,
		Type:      detail.Type,
		IsTop:     detail.IsTop,
		Category:  toCategoryVO(detail.Category),
		Tags:      toTagVOs(detail.Tags),
		ViewCount: detail.ViewCount,
		LikeCount: detail.LikeCount,
		HotIndex:  detail.HotIndex,
		Ctime:     detail.Ctime.UnixMilli(),
		Utime:     detail.Utime.UnixMilli(),
		Newest:    toOutlineVOs(detail.Newest),
		Related:   toOutlineVOs(detail.Related),
	}
	if detail.Prev != nil {
		prev := toOutlineVO(*detail.Prev)
		vo.Prev = &prev
	}
	if detail.Next != nil {
		next := toOutlineVO(*detail.Next)
		vo.Next = &next
	}
	return vo
}

func toBackgroundVO(art domain.Article) ArticleBackgroundVO {
	return ArticleBackgroundVO{
		Id:        art.Id,
		Title:     art.Title,
		Cover:     art.Cover,
		Status:    art.Status.ToUint8(),
		Type:      art.Type,
		IsTop:     art.IsTop,
		IsDeleted: art.IsDeleted,
		ViewCount: art.ViewCount,
		LikeCount: art.LikeCount,
		HotIndex:  art.HotIndex,
		Category:  toCategoryVO(art.Category),
		Tags:      toTagVOs(art.Tags),
		Ctime:     art.Ctime.UnixMilli(),
	}
}

func toAdminVO(art domain.Article) ArticleAdminVO {
	tagNames := make([]string, 0, len(art.Tags))
	for _, t := range art.Tags {
		tagNames = append(tagNames, t.Name)
	}
	return ArticleAdminVO{
		Id:           art.Id,
		Title:        art.Title,
		Content:      art.Content,
		Cover:        art.Cover,
		Status:       art.Status.ToUint8(),
		Type:         art.Type,
		IsTop:        art.IsTop,
		CategoryName: art.Category.Name,
		TagNames:     tagNames,
	}
}

func toRoleDigestVO(role domain.Role) RoleDigestVO {
	return RoleDigestVO{
		Id:    role.Id,
		Name:  role.Name,
		Label: role.Label,
	}
}

func toRoleVO(role domain.Role) RoleVO {
	return RoleVO{
		Id:          role.Id,
		Name:        role.Name,
		Label:       role.Label,
		IsDisabled:  role.IsDisabled,
		ResourceIds: role.ResourceIds,
		Ctime:       role.Ctime.UnixMilli(),
	}
}

func toUserInfoVO(u domain.User) UserInfoVO {
	return UserInfoVO{
		Id:       u.Id,
		Username: u.Username,
		Email:    u.Email,
		Nickname: u.Nickname,
		Avatar:   u.Avatar,
		Intro:    u.Intro,
		Website:  u.Website,
	}
}
