package logger

// NoOpLogger 什么都不做，测试和默认值用
type NoOpLogger struct{}

func NewNoOpLogger() Logger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) Debug(msg string, args ...Field) {}

func (n *NoOpLogger) Info(msg string, args ...Field) {}

func (n *NoOpLogger) Warn(msg string, args ...Field) {}

func (n *NoOpLogger) Error(msg string, args ...Field) {}
