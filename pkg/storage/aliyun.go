package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// OSSProvider 阿里云 OSS 实现
type OSSProvider struct {
	bucket *oss.Bucket
	// 外链域名，形如 https://img.example.com
	host string
}

func NewOSSProvider(client *oss.Client, bucketName, host string) (*OSSProvider, error) {
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return &OSSProvider{
		bucket: bucket,
		host:   host,
	}, nil
}

// Upload 重命名成 uuid 再上传，避免同名覆盖
func (p *OSSProvider) Upload(ctx context.Context, category, filename string, data io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s%s", category, uuid.New().String(), filepath.Ext(filename))
	err := p.bucket.PutObject(key, data)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", p.host, key), nil
}
