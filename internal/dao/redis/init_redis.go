package redis

import (
	"context"
	"strconv"
	"time"

	"venturedeck/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Init 按配置创建缓存服务
// Host 为空时退化为进程内缓存，只适合单实例部署
func Init(conf config.RedisConfig) (AsyncCacheService, func()) {
	if conf.Host == "" {
		zap.L().Warn("Redis host not configured, using in-process cache")
		return NewMemoryCache(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         conf.Host + ":" + strconv.Itoa(conf.Port),
		Password:     conf.Password,
		DB:           conf.Db,
		PoolSize:     50,
		MinIdleConns: 15, // 与 Worker 数量匹配
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Fatal("Failed to connect redis", zap.String("addr", client.Options().Addr), zap.Error(err))
	}

	cache := NewRedisCache(client, 15, 3000)
	return cache, func() {
		if err := cache.Close(); err != nil {
			zap.L().Error("Failed to close redis", zap.Error(err))
		}
	}
}
