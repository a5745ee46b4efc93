package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

const redisKeyPrefix = "wfm:staffing:"

// RedisCache 基于 redis 的缓存实现，适合多个进程共享测算结果
// redis 不可用时 Get/Set 返回错误，由调用方降级为直接计算
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.StaffingResult, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, err
	}

	return &entry.Result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, result *domain.StaffingResult) error {
	entry := domain.CacheEntry{
		Result:    *result,
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err()
}
