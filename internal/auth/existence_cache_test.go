package auth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/users-service/internal/domain"
)

type countingFallback struct {
	calls  atomic.Int32
	result bool
	err    error
}

func (f *countingFallback) fn(context.Context) (bool, error) {
	f.calls.Add(1)
	return f.result, f.err
}

func TestExistenceCacheHitSkipsFallback(t *testing.T) {
	cache := NewExistenceCache(time.Minute, 100, nil)
	fallback := &countingFallback{result: true}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		exists, err := cache.CheckExists(ctx, domain.RoleMaster, 5, fallback.fn)
		require.NoError(t, err)
		assert.True(t, exists)
	}
	assert.Equal(t, int32(1), fallback.calls.Load())
}

func TestExistenceCacheCachesNegativeAnswers(t *testing.T) {
	cache := NewExistenceCache(time.Minute, 100, nil)
	fallback := &countingFallback{result: false}

	for i := 0; i < 2; i++ {
		exists, err := cache.CheckExists(context.Background(), domain.RoleDirector, 9, fallback.fn)
		require.NoError(t, err)
		assert.False(t, exists)
	}
	assert.Equal(t, int32(1), fallback.calls.Load())
}

func TestExistenceCacheKeysIncludeRole(t *testing.T) {
	cache := NewExistenceCache(time.Minute, 100, nil)
	master := &countingFallback{result: true}
	director := &countingFallback{result: false}

	exists, err := cache.CheckExists(context.Background(), domain.RoleMaster, 1, master.fn)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = cache.CheckExists(context.Background(), domain.RoleDirector, 1, director.fn)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Equal(t, int32(1), director.calls.Load())
}

func TestExistenceCacheRefreshesAfterTTL(t *testing.T) {
	cache := NewExistenceCache(30*time.Millisecond, 100, nil)
	fallback := &countingFallback{result: true}

	_, err := cache.CheckExists(context.Background(), domain.RoleMaster, 1, fallback.fn)
	require.NoError(t, err)
	time.Sleep(60 * time.Millisecond)
	_, err = cache.CheckExists(context.Background(), domain.RoleMaster, 1, fallback.fn)
	require.NoError(t, err)

	assert.Equal(t, int32(2), fallback.calls.Load())
}

func TestExistenceCacheDoesNotCacheFailures(t *testing.T) {
	cache := NewExistenceCache(time.Minute, 100, nil)
	failing := &countingFallback{err: errors.New("connection refused")}

	exists, err := cache.CheckExists(context.Background(), domain.RoleMaster, 3, failing.fn)
	assert.Error(t, err)
	assert.False(t, exists)
	assert.Equal(t, 0, cache.Len())

	healthy := &countingFallback{result: true}
	exists, err = cache.CheckExists(context.Background(), domain.RoleMaster, 3, healthy.fn)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int32(1), healthy.calls.Load())
}

func TestExistenceCacheEvictsBelowCapacity(t *testing.T) {
	const maxSize = 10
	cache := NewExistenceCache(time.Hour, maxSize, nil)
	fallback := &countingFallback{result: true}

	for id := int64(0); id <= maxSize; id++ {
		_, err := cache.CheckExists(context.Background(), domain.RoleMaster, id, fallback.fn)
		require.NoError(t, err)
	}

	assert.Less(t, cache.Len(), maxSize)
}

func TestExistenceCacheEvictsOldestHalf(t *testing.T) {
	const maxSize = 10
	cache := NewExistenceCache(time.Hour, maxSize, nil)
	fallback := &countingFallback{result: true}
	ctx := context.Background()

	for id := int64(0); id < maxSize; id++ {
		_, err := cache.CheckExists(ctx, domain.RoleMaster, id, fallback.fn)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	_, err := cache.CheckExists(ctx, domain.RoleMaster, maxSize, fallback.fn)
	require.NoError(t, err)
	assert.Equal(t, maxSize/2+1, cache.Len())

	// Newest survivors are still served from cache.
	before := fallback.calls.Load()
	_, err = cache.CheckExists(ctx, domain.RoleMaster, maxSize-1, fallback.fn)
	require.NoError(t, err)
	assert.Equal(t, before, fallback.calls.Load())

	// The oldest entry was dropped and goes back to the store.
	_, err = cache.CheckExists(ctx, domain.RoleMaster, 0, fallback.fn)
	require.NoError(t, err)
	assert.Equal(t, before+1, fallback.calls.Load())
}

func TestExistenceCacheCleanupPrefersExpiredEntries(t *testing.T) {
	cache := NewExistenceCache(20*time.Millisecond, 4, nil)
	fallback := &countingFallback{result: true}
	ctx := context.Background()

	for id := int64(0); id < 4; id++ {
		_, err := cache.CheckExists(ctx, domain.RoleMaster, id, fallback.fn)
		require.NoError(t, err)
	}
	time.Sleep(40 * time.Millisecond)

	_, err := cache.CheckExists(ctx, domain.RoleMaster, 99, fallback.fn)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestExistenceCacheInvalidate(t *testing.T) {
	cache := NewExistenceCache(time.Minute, 100, nil)
	fallback := &countingFallback{result: true}
	ctx := context.Background()

	_, err := cache.CheckExists(ctx, domain.RoleMaster, 1, fallback.fn)
	require.NoError(t, err)
	cache.Invalidate(domain.RoleMaster, 1)
	_, err = cache.CheckExists(ctx, domain.RoleMaster, 1, fallback.fn)
	require.NoError(t, err)

	assert.Equal(t, int32(2), fallback.calls.Load())
}

func TestExistenceCacheConcurrentAccess(t *testing.T) {
	cache := NewExistenceCache(time.Minute, 50, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for worker := 0; worker < 16; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := int64((worker*200 + i) % 120)
				exists, err := cache.CheckExists(ctx, domain.RoleMaster, id, func(context.Context) (bool, error) {
					return id%2 == 0, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, id%2 == 0, exists)
			}
		}(worker)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 50)
}

func TestExistenceCacheCollapsesConcurrentMisses(t *testing.T) {
	cache := NewExistenceCache(time.Minute, 100, nil)
	release := make(chan struct{})
	var calls atomic.Int32

	slow := func(context.Context) (bool, error) {
		calls.Add(1)
		<-release
		return true, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			exists, err := cache.CheckExists(context.Background(), domain.RoleMaster, 42, slow)
			assert.NoError(t, err)
			assert.True(t, exists)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(8))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func waitForWaiters(t *testing.T, cache *ExistenceCache, key string, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		cache.flightsMu.Lock()
		defer cache.flightsMu.Unlock()
		f, ok := cache.flights[key]
		return ok && f.waiters == n
	}, time.Second, time.Millisecond)
}

func TestExistenceCacheCancelledCallerDoesNotFailOthers(t *testing.T) {
	cache := NewExistenceCache(time.Minute, 100, nil)
	release := make(chan struct{})
	var calls atomic.Int32

	fallback := func(ctx context.Context) (bool, error) {
		calls.Add(1)
		select {
		case <-release:
			return true, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.CheckExists(firstCtx, domain.RoleMaster, 42, fallback)
		firstErr <- err
	}()
	waitForWaiters(t, cache, existenceKey(domain.RoleMaster, 42), 1)

	type outcome struct {
		exists bool
		err    error
	}
	second := make(chan outcome, 1)
	go func() {
		exists, err := cache.CheckExists(context.Background(), domain.RoleMaster, 42, fallback)
		second <- outcome{exists, err}
	}()
	waitForWaiters(t, cache, existenceKey(domain.RoleMaster, 42), 2)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.True(t, got.exists)
	assert.Equal(t, int32(1), calls.Load())

	exists, err := cache.CheckExists(context.Background(), domain.RoleMaster, 42, fallback)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int32(1), calls.Load(), "answer from the shared lookup is cached")
}

func TestExistenceCacheAbortsLookupWhenEveryCallerLeaves(t *testing.T) {
	cache := NewExistenceCache(time.Minute, 100, nil)
	aborted := make(chan struct{})

	blocking := func(ctx context.Context) (bool, error) {
		<-ctx.Done()
		close(aborted)
		return false, ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := cache.CheckExists(ctx, domain.RoleDirector, 5, blocking)
		done <- err
	}()
	waitForWaiters(t, cache, existenceKey(domain.RoleDirector, 5), 1)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	select {
	case <-aborted:
	case <-time.After(time.Second):
		t.Fatal("shared lookup kept running after its only caller left")
	}

	healthy := &countingFallback{result: true}
	exists, err := cache.CheckExists(context.Background(), domain.RoleDirector, 5, healthy.fn)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int32(1), healthy.calls.Load(), "aborted lookup must not be cached")
}

func TestExistenceCacheSmallCapacityStaysBelowMax(t *testing.T) {
	for _, requested := range []int{1, 2, 3} {
		cache := NewExistenceCache(time.Hour, requested, nil)
		require.Equal(t, minExistenceMaxSize, cache.maxSize)

		fallback := &countingFallback{result: true}
		for id := int64(0); id <= int64(cache.maxSize); id++ {
			_, err := cache.CheckExists(context.Background(), domain.RoleMaster, id, fallback.fn)
			require.NoError(t, err)
		}
		assert.Less(t, cache.Len(), cache.maxSize, "requested capacity %d", requested)
	}
}
