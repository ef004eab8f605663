package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/domain"
)

func TestToTagSearchVOs(t *testing.T) {
	tags := []domain.Tag{
		{Id: 5, Name: "Go"},
		{Id: 6, Name: "Redis"},
	}
	counts := map[int64]int64{
		5: 42,
	}
	res := toTagSearchVOs(tags, counts)
	require.Len(t, res, 2)
	assert.Equal(t, TagSearchVO{Id: 5, Name: "Go", ArticleCount: 42}, res[0])
	// 没有统计行的标签文章数为 0
	assert.Equal(t, TagSearchVO{Id: 6, Name: "Redis", ArticleCount: 0}, res[1])
}

func TestToDetailVO(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	detail := domain.ArticleDetail{
		Article: domain.Article{
			Id:      10,
			Title:   "标题",
			Content: "正文",
			Category: domain.Category{
				Id:   1,
				Name: "Go",
			},
			Tags: []domain.Tag{
				{Id: 100, Name: "并发"},
			},
			Ctime: now,
			Utime: now,
		},
		Prev:   &domain.Article{Id: 11, Title: "下一篇"},
		Newest: []domain.Article{{Id: 12}},
	}
	vo := toDetailVO(detail)
	assert.Equal(t, int64(10), vo.Id)
	assert.Equal(t, "Go", vo.Category.Name)
	assert.Equal(t, []TagVO{{Id: 100, Name: "并发"}}, vo.Tags)
	assert.Equal(t, int64(1700000000000), vo.Ctime)
	require.NotNil(t, vo.Prev)
	assert.Equal(t, int64(11), vo.Prev.Id)
	// 已经到头时保持 nil
	assert.Nil(t, vo.Next)
	require.Len(t, vo.Newest, 1)
}
