package ioc

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"blog/internal/job"
	"blog/internal/service"
	"blog/pkg/logger"
)

func InitRankingJob(svc service.RankingService) *job.RankingJob {
	return job.NewRankingJob(svc, time.Second*30)
}

func InitJobs(l logger.Logger, rankingJob *job.RankingJob) *cron.Cron {
	builder := NewCronJobBuilder(l)
	expr := cron.New(cron.WithSeconds())
	_, err := expr.AddJob("@every 15m", builder.Build(rankingJob))
	if err != nil {
		panic(err)
	}
	return expr
}

// CronJobBuilder 给定时任务加上日志和执行时间统计
type CronJobBuilder struct {
	l      logger.Logger
	vector *prometheus.SummaryVec
}

func NewCronJobBuilder(l logger.Logger) *CronJobBuilder {
	vector := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "blog",
		Subsystem: "jobs",
		Name:      "cron_job",
		Help:      "统计定时任务的执行时间",
	}, []string{"name", "success"})
	prometheus.MustRegister(vector)
	return &CronJobBuilder{
		l:      l,
		vector: vector,
	}
}

func (b *CronJobBuilder) Build(j job.Job) cron.Job {
	name := j.Name()
	return cronJobFuncAdapter(func() error {
		start := time.Now()
		b.l.Info("任务开始", logger.String("name", name))
		err := j.Run()
		if err != nil {
			b.l.Error("任务执行失败",
				logger.String("name", name), logger.Error(err))
		}
		duration := time.Since(start)
		b.vector.WithLabelValues(name, strconv.FormatBool(err == nil)).
			Observe(float64(duration.Milliseconds()))
		return nil
	})
}

type cronJobFuncAdapter func() error

func (c cronJobFuncAdapter) Run() {
	_ = c()
}
