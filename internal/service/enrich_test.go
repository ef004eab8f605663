package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/domain"
	"blog/internal/repository"
)

// enrichFakeRepo 只实现装配流程用到的三个方法
type enrichFakeRepo struct {
	repository.ArticleRepository
	categories map[int64]domain.Category
	tags       map[int64][]domain.Tag
	scores     map[int64]float64

	categoriesErr error
}

func (f *enrichFakeRepo) CategoriesByIds(ctx context.Context, ids []int64) (map[int64]domain.Category, error) {
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return f.categories, nil
}

func (f *enrichFakeRepo) TagsByArticleIds(ctx context.Context, ids []int64) (map[int64][]domain.Tag, error) {
	return f.tags, nil
}

func (f *enrichFakeRepo) HotScores(ctx context.Context, ids []int64) (map[int64]float64, error) {
	return f.scores, nil
}

func TestArticleEnricher_Run(t *testing.T) {
	repo := &enrichFakeRepo{
		categories: map[int64]domain.Category{
			10: {Id: 10, Name: "Go"},
			20: {Id: 20, Name: "MySQL"},
		},
		tags: map[int64][]domain.Tag{
			1: {{Id: 100, Name: "并发"}},
			2: {{Id: 200, Name: "索引"}},
		},
		scores: map[int64]float64{
			1: 3.14,
			2: 2.71,
		},
	}
	arts := []domain.Article{
		{Id: 1, CategoryId: 10},
		{Id: 2, CategoryId: 20},
		{Id: 3, CategoryId: 10},
	}
	res, err := NewArticleEnricher(repo, arts).
		WithCategory().WithTags().WithHotIndex().
		Run(context.Background())
	require.NoError(t, err)
	// 输出顺序和输入一致
	require.Len(t, res, 3)
	assert.Equal(t, int64(1), res[0].Id)
	assert.Equal(t, int64(2), res[1].Id)
	assert.Equal(t, int64(3), res[2].Id)
	assert.Equal(t, "Go", res[0].Category.Name)
	assert.Equal(t, "MySQL", res[1].Category.Name)
	assert.Equal(t, []domain.Tag{{Id: 100, Name: "并发"}}, res[0].Tags)
	assert.Equal(t, 3.14, res[0].HotIndex)
	assert.Equal(t, 2.71, res[1].HotIndex)
	// 没查到的文章保持零值
	assert.Empty(t, res[2].Tags)
	assert.Equal(t, float64(0), res[2].HotIndex)
}

func TestArticleEnricher_NoSteps(t *testing.T) {
	arts := []domain.Article{
		{Id: 1}, {Id: 2},
	}
	res, err := NewArticleEnricher(&enrichFakeRepo{}, arts).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, arts, res)
}

func TestArticleEnricher_StepFailed(t *testing.T) {
	mockErr := errors.New("查询分类失败")
	repo := &enrichFakeRepo{
		categoriesErr: mockErr,
		tags: map[int64][]domain.Tag{
			1: {{Id: 100, Name: "并发"}},
		},
	}
	res, err := NewArticleEnricher(repo, []domain.Article{{Id: 1, CategoryId: 10}}).
		WithCategory().WithTags().
		Run(context.Background())
	// 任何一步失败整批失败
	assert.Equal(t, mockErr, err)
	assert.Nil(t, res)
}
