package article

import (
	"context"
	"time"

	"github.com/IBM/sarama"

	"blog/internal/repository"
	"blog/pkg/logger"
	"blog/pkg/saramax"
)

type Consumer interface {
	Start() error
}

// ReadEventBatchConsumer 攒一批阅读事件，按文章 id 分组累加浏览量
type ReadEventBatchConsumer struct {
	client sarama.ConsumerGroup
	repo   repository.ArticleRepository
	l      logger.Logger
}

func NewReadEventBatchConsumer(client sarama.ConsumerGroup,
	repo repository.ArticleRepository, l logger.Logger) *ReadEventBatchConsumer {
	return &ReadEventBatchConsumer{
		client: client,
		repo:   repo,
		l:      l,
	}
}

func (c *ReadEventBatchConsumer) Start() error {
	go func() {
		err := c.client.Consume(context.Background(),
			[]string{topicReadEvent},
			saramax.NewBatchHandler[ReadEvent](c.l, c.Consume))
		if err != nil {
			c.l.Error("退出消费循环", logger.Error(err))
		}
	}()
	return nil
}

func (c *ReadEventBatchConsumer) Consume(msgs []*sarama.ConsumerMessage, evts []ReadEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ids := make([]int64, 0, len(evts))
	for _, evt := range evts {
		ids = append(ids, evt.Aid)
	}
	return c.repo.BatchIncrViewCnt(ctx, ids)
}
