// Package storage 头像等媒体文件的对象存储
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"venturedeck/internal/config"
)

// ErrPresignUnsupported 本地存储不支持客户端直传
var ErrPresignUnsupported = errors.New("presigned upload not supported by local storage")

// PresignedUpload 客户端直传所需信息
type PresignedUpload struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Storage 对象存储接口
type Storage interface {
	// Put 写入对象并返回对外访问地址
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	PresignPut(ctx context.Context, key, contentType string) (*PresignedUpload, error)
}

// New 配置了 Bucket 时使用 S3，否则写本地磁盘
func New(ctx context.Context, conf config.StorageConfig) (Storage, error) {
	if conf.Bucket == "" {
		return NewLocalStorage(conf.LocalPath, conf.PublicBaseURL)
	}
	return NewS3Storage(ctx, conf)
}
