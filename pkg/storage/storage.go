package storage

import (
	"context"
	"io"
)

// Provider 对象存储的抽象。
// category 是业务上的目录前缀，例如文章图片用 "article"
type Provider interface {
	Upload(ctx context.Context, category, filename string, data io.Reader) (string, error)
}
