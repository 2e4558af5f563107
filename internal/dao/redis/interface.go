// Package redis 定义缓存服务接口及其 Redis / 进程内实现
// Service 层依赖接口而非具体实现
package redis

import (
	"context"
	"time"
)

// CacheService 缓存服务接口
type CacheService interface {
	// Set 设置键值对并指定过期时间，ttl 为 0 表示不过期
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get 获取键对应的值（键不存在返回空字符串和 nil）
	Get(ctx context.Context, key string) (string, error)
	// GetOrError 获取键对应的值（键不存在返回 CodeNotFound）
	GetOrError(ctx context.Context, key string) (string, error)
	// Delete 删除键（如果存在）
	Delete(ctx context.Context, key string) error

	// AddToSet 写入集合并刷新整个集合的过期时间，ttl 为 0 表示不过期
	AddToSet(ctx context.Context, key string, ttl time.Duration, members ...string) error
	// GetSetMembers 获取集合中的所有成员，集合不存在返回空切片
	GetSetMembers(ctx context.Context, key string) ([]string, error)
}

// AsyncCacheService 提供异步任务提交能力，用于非阻塞的缓存失效
type AsyncCacheService interface {
	CacheService
	// SubmitTask 提交异步缓存任务，队列满时同步执行
	SubmitTask(action func())
}
