package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/cache"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

func sampleRequest() *domain.StaffingRequest {
	return &domain.StaffingRequest{
		CallVolume:         180,
		AverageHandleTime:  300,
		TargetServiceLevel: 0.8,
		TargetAnswerTime:   20,
		Shrinkage:          0.3,
		MaxOccupancy:       0.85,
	}
}

func TestKeyIgnoresFloatNoise(t *testing.T) {
	a := sampleRequest()
	b := sampleRequest()

	// 第 4 位小数之后的浮点噪声不应该产生不同的键
	b.Shrinkage = 0.3000000001

	assert.Equal(t, cache.Key(a), cache.Key(b))
}

func TestKeyDistinguishesRequests(t *testing.T) {
	a := sampleRequest()
	b := sampleRequest()
	b.CallVolume = 181

	assert.NotEqual(t, cache.Key(a), cache.Key(b))
}

func TestMemoryCacheGetSet(t *testing.T) {
	c := cache.NewMemoryCache(16, time.Hour)
	ctx := context.Background()
	key := cache.Key(sampleRequest())

	_, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)

	result := &domain.StaffingResult{RequiredAgents: 28, ServiceLevel: 0.81}
	require.NoError(t, c.Set(ctx, key, result))

	cached, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, *result, *cached)
}

// 调用方拿到的是副本，修改它不应该影响缓存里的结果
func TestMemoryCacheReturnsCopy(t *testing.T) {
	c := cache.NewMemoryCache(16, time.Hour)
	ctx := context.Background()
	key := cache.Key(sampleRequest())

	require.NoError(t, c.Set(ctx, key, &domain.StaffingResult{RequiredAgents: 28}))

	first, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, hit)
	first.RequiredAgents = 999

	second, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, int32(28), second.RequiredAgents)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := cache.NewMemoryCache(16, 10*time.Millisecond)
	ctx := context.Background()
	key := cache.Key(sampleRequest())

	require.NoError(t, c.Set(ctx, key, &domain.StaffingResult{RequiredAgents: 28}))

	time.Sleep(30 * time.Millisecond)

	_, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
}

// 配合 -race 使用，验证并发读写不会破坏内部状态
func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := cache.NewMemoryCache(4, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				req := sampleRequest()
				req.CallVolume = float64(j % 10)
				key := cache.Key(req)

				_ = c.Set(ctx, key, &domain.StaffingResult{RequiredAgents: int32(j)})
				_, _, _ = c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryCacheSweep(t *testing.T) {
	c := cache.NewMemoryCache(2, 10*time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		req := sampleRequest()
		req.CallVolume = float64(i)
		require.NoError(t, c.Set(ctx, cache.Key(req), &domain.StaffingResult{RequiredAgents: int32(i)}))
	}

	time.Sleep(30 * time.Millisecond)
	c.Sweep()

	req := sampleRequest()
	req.CallVolume = 0
	_, hit, err := c.Get(ctx, cache.Key(req))
	require.NoError(t, err)
	assert.False(t, hit)
}
