package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/domain"
	events "blog/internal/events/article"
	"blog/internal/repository"
	"blog/pkg/logger"
)

// articleFakeRepo 点赞和详情路径的内存假实现
type articleFakeRepo struct {
	repository.ArticleRepository

	mu       sync.Mutex
	arts     map[int64]domain.Article
	liked    map[int64]map[int64]bool
	likeCnts map[int64]int64

	prev map[int64]domain.Article
	next map[int64]domain.Article

	newest  []domain.Article
	related []domain.Article

	deleted []int64
}

func newArticleFakeRepo() *articleFakeRepo {
	return &articleFakeRepo{
		arts:     map[int64]domain.Article{},
		liked:    map[int64]map[int64]bool{},
		likeCnts: map[int64]int64{},
		prev:     map[int64]domain.Article{},
		next:     map[int64]domain.Article{},
	}
}

func (f *articleFakeRepo) GetById(ctx context.Context, id int64) (domain.Article, error) {
	art, ok := f.arts[id]
	if !ok {
		return domain.Article{}, repository.ErrArticleNotFound
	}
	return art, nil
}

func (f *articleFakeRepo) Liked(ctx context.Context, aid, uid int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.liked[aid][uid], nil
}

func (f *articleFakeRepo) IncrLike(ctx context.Context, aid, uid int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.liked[aid] == nil {
		f.liked[aid] = map[int64]bool{}
	}
	f.liked[aid][uid] = true
	f.likeCnts[aid]++
	return nil
}

func (f *articleFakeRepo) DecrLike(ctx context.Context, aid, uid int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.liked[aid], uid)
	f.likeCnts[aid]--
	return nil
}

func (f *articleFakeRepo) Prev(ctx context.Context, id int64) (domain.Article, error) {
	art, ok := f.prev[id]
	if !ok {
		return domain.Article{}, repository.ErrArticleNotFound
	}
	return art, nil
}

func (f *articleFakeRepo) Next(ctx context.Context, id int64) (domain.Article, error) {
	art, ok := f.next[id]
	if !ok {
		return domain.Article{}, repository.ErrArticleNotFound
	}
	return art, nil
}

func (f *articleFakeRepo) Newest(ctx context.Context, limit int) ([]domain.Article, error) {
	return f.newest, nil
}

func (f *articleFakeRepo) Related(ctx context.Context, id int64, limit int) ([]domain.Article, error) {
	return f.related, nil
}

func (f *articleFakeRepo) CategoriesByIds(ctx context.Context, ids []int64) (map[int64]domain.Category, error) {
	return map[int64]domain.Category{}, nil
}

func (f *articleFakeRepo) TagsByArticleIds(ctx context.Context, ids []int64) (map[int64][]domain.Tag, error) {
	return map[int64][]domain.Tag{}, nil
}

func (f *articleFakeRepo) HotScores(ctx context.Context, ids []int64) (map[int64]float64, error) {
	return map[int64]float64{}, nil
}

func (f *articleFakeRepo) DeleteByIds(ctx context.Context, ids []int64) (int64, error) {
	f.deleted = ids
	// 模拟其中一篇已经删过
	return int64(len(ids) - 1), nil
}

type fakeProducer struct{}

func (f *fakeProducer) ProduceReadEvent(ctx context.Context, evt events.ReadEvent) error {
	return nil
}

func newTestArticleService(repo repository.ArticleRepository) ArticleService {
	return NewArticleService(repo, nil, &fakeProducer{}, nil, logger.NewNoOpLogger())
}

func TestArticleService_Like(t *testing.T) {
	repo := newArticleFakeRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	// 第一次点赞生效
	effective, err := svc.Like(ctx, 7, 1, true)
	require.NoError(t, err)
	assert.True(t, effective)
	assert.Equal(t, int64(1), repo.likeCnts[1])

	// 重复点赞不产生额外写入
	effective, err = svc.Like(ctx, 7, 1, true)
	require.NoError(t, err)
	assert.False(t, effective)
	assert.Equal(t, int64(1), repo.likeCnts[1])

	// 取消点赞
	effective, err = svc.Like(ctx, 7, 1, false)
	require.NoError(t, err)
	assert.True(t, effective)
	assert.Equal(t, int64(0), repo.likeCnts[1])

	// 重复取消同样幂等
	effective, err = svc.Like(ctx, 7, 1, false)
	require.NoError(t, err)
	assert.False(t, effective)
	assert.Equal(t, int64(0), repo.likeCnts[1])
}

func TestArticleService_Get(t *testing.T) {
	repo := newArticleFakeRepo()
	repo.arts[10] = domain.Article{
		Id:     10,
		Title:  "中间这篇",
		Status: domain.ArticleStatusPublic,
	}
	repo.arts[12] = domain.Article{
		Id:     12,
		Title:  "没发布的",
		Status: domain.ArticleStatusDraft,
	}
	// id 向上最近的是 11，向下最近的是 9
	repo.prev[10] = domain.Article{Id: 11, Title: "下一篇"}
	repo.next[10] = domain.Article{Id: 9, Title: "上一篇"}
	repo.newest = []domain.Article{{Id: 12}, {Id: 11}}
	repo.related = []domain.Article{{Id: 3}}
	svc := newTestArticleService(repo)

	detail, err := svc.Get(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.Equal(t, "中间这篇", detail.Title)
	require.NotNil(t, detail.Prev)
	assert.Equal(t, int64(11), detail.Prev.Id)
	require.NotNil(t, detail.Next)
	assert.Equal(t, int64(9), detail.Next.Id)
	assert.Len(t, detail.Newest, 2)
	assert.Len(t, detail.Related, 1)

	// 不存在的文章
	_, err = svc.Get(context.Background(), 7, 404)
	assert.EqualError(t, err, "id为404的文章不存在")

	// 草稿对外不可见
	_, err = svc.Get(context.Background(), 7, 12)
	assert.EqualError(t, err, "id为12的文章不存在")
}

func TestArticleService_Get_NoNeighbors(t *testing.T) {
	repo := newArticleFakeRepo()
	repo.arts[1] = domain.Article{
		Id:     1,
		Status: domain.ArticleStatusPublic,
	}
	svc := newTestArticleService(repo)

	detail, err := svc.Get(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Nil(t, detail.Prev)
	assert.Nil(t, detail.Next)
}

func TestArticleService_Delete(t *testing.T) {
	repo := newArticleFakeRepo()
	svc := newTestArticleService(repo)

	affected, err := svc.Delete(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, repo.deleted)
	assert.Equal(t, int64(2), affected)
}
