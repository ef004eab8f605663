package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/ecodeclub/ekit/queue"

	"blog/internal/domain"
	"blog/internal/repository"
)

type RankingService interface {
	// RankTopN 重算热度榜并整体替换
	RankTopN(ctx context.Context) error
}

type BatchRankingService struct {
	artRepo  repository.ArticleRepository
	rankRepo repository.RankingRepository

	batchSize int
	n         int
	scoreFunc func(viewCnt, likeCnt int64, utime time.Time) float64
}

func NewBatchRankingService(artRepo repository.ArticleRepository,
	rankRepo repository.RankingRepository) RankingService {
	return &BatchRankingService{
		artRepo:   artRepo,
		rankRepo:  rankRepo,
		batchSize: 100,
		n:         100,
		scoreFunc: func(viewCnt, likeCnt int64, utime time.Time) float64 {
			hours := time.Since(utime).Hours()
			weight := float64(viewCnt) + 8*float64(likeCnt)
			return weight / math.Pow(hours+2, 1.5)
		},
	}
}

func (b *BatchRankingService) RankTopN(ctx context.Context) error {
	scores, err := b.topN(ctx)
	if err != nil {
		return err
	}
	return b.rankRepo.ReplaceHot(ctx, scores)
}

func (b *BatchRankingService) topN(ctx context.Context) ([]domain.HotScore, error) {
	// 只看最近 7 天更新过的文章
	ddl := time.Now().Add(-7 * 24 * time.Hour)
	topN := queue.NewPriorityQueue[domain.HotScore](b.n,
		func(src, dst domain.HotScore) int {
			if src.Score > dst.Score {
				return 1
			} else if src.Score == dst.Score {
				return 0
			}
			return -1
		})
	offset := 0
	for {
		arts, err := b.artRepo.ListPub(ctx, offset, b.batchSize)
		if err != nil {
			return nil, err
		}
		for _, art := range arts {
			score := domain.HotScore{
				ArticleId: art.Id,
				Score:     b.scoreFunc(art.ViewCount, art.LikeCount, art.Utime),
			}
			err = topN.Enqueue(score)
			if errors.Is(err, queue.ErrOutOfCapacity) {
				// 队列满了，和当前最小的比一比
				minEl, _ := topN.Dequeue()
				if minEl.Score < score.Score {
					_ = topN.Enqueue(score)
				} else {
					_ = topN.Enqueue(minEl)
				}
			}
		}
		if len(arts) < b.batchSize ||
			arts[len(arts)-1].Utime.Before(ddl) {
			break
		}
		offset += len(arts)
	}
	res := make([]domain.HotScore, topN.Len())
	// 小顶堆先出小的，倒着填得到降序
	for i := topN.Len() - 1; i >= 0; i-- {
		el, err := topN.Dequeue()
		if err != nil {
			break
		}
		res[i] = el
	}
	return res, nil
}
