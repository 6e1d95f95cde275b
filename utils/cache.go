// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"servicefinder/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SearchCacheTTL bounds how stale a cached search page may be.
const SearchCacheTTL = 2 * time.Minute

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. The cache is optional:
// if Redis is unreachable the client stays nil and callers run uncached.
func InitCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis cache unreachable, running without search cache", zap.Error(err))
		_ = client.Close()
		CacheClient = nil
		return
	}
	CacheClient = client
}

// GetCacheClient returns the generic cache client, nil when caching is
// disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}
