package ratelimit

import "context"

type Limiter interface {
	// Limit key 对应的请求是否应该被限流
	Limit(ctx context.Context, key string) (bool, error)
}
