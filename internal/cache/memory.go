package cache

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

// MemoryCache 进程内缓存，按键哈希分片以减少锁竞争
// 两个并发请求同时未命中时允许重复计算，但读写本身必须是一致的
type MemoryCache struct {
	shards []*memoryShard
	ttl    time.Duration
}

type memoryShard struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	entry     domain.CacheEntry
	expiresAt time.Time
}

func NewMemoryCache(shardCount int, ttl time.Duration) *MemoryCache {
	if shardCount <= 0 {
		shardCount = 1
	}

	shards := make([]*memoryShard, shardCount)
	for i := range shards {
		shards[i] = &memoryShard{
			entries: make(map[string]*memoryEntry),
		}
	}

	return &MemoryCache{
		shards: shards,
		ttl:    ttl,
	}
}

func (c *MemoryCache) shardFor(key string) *memoryShard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return c.shards[int(h.Sum32())%len(c.shards)]
}

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.StaffingResult, bool, error) {
	shard := c.shardFor(key)

	shard.mu.RLock()
	e, exists := shard.entries[key]
	shard.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}

	// 惰性过期：命中时才检查是否过期
	if time.Now().After(e.expiresAt) {
		shard.mu.Lock()
		delete(shard.entries, key)
		shard.mu.Unlock()
		return nil, false, nil
	}

	// 返回副本，调用方不能修改缓存内部持有的结果
	result := e.entry.Result
	return &result, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, result *domain.StaffingResult) error {
	shard := c.shardFor(key)
	now := time.Now()

	shard.mu.Lock()
	shard.entries[key] = &memoryEntry{
		entry: domain.CacheEntry{
			Result:    *result,
			CreatedAt: now,
		},
		expiresAt: now.Add(c.ttl),
	}
	shard.mu.Unlock()

	return nil
}

// Sweep 清理所有已过期的条目
// 正确性不依赖这个方法，只是用来在高键基数下限制内存占用
func (c *MemoryCache) Sweep() {
	now := time.Now()
	for _, shard := range c.shards {
		shard.mu.Lock()
		for key, e := range shard.entries {
			if now.After(e.expiresAt) {
				delete(shard.entries, key)
			}
		}
		shard.mu.Unlock()
	}
}
