package job

// Job 定时任务的统一抽象
type Job interface {
	Name() string
	Run() error
}
