package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_AllowUpToLimit(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := store.Allow(ctx, "ip-1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should pass", i+1)
		assert.Equal(t, 3, result.Limit)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result, err := store.Allow(ctx, "ip-1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.GreaterOrEqual(t, result.RetryAfter, 1)
}

func TestInMemoryStore_KeysAreIndependent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, err := store.Allow(ctx, "ip-1", 1, time.Minute)
	require.NoError(t, err)
	blocked, err := store.Allow(ctx, "ip-1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	other, err := store.Allow(ctx, "ip-2", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestInMemoryStore_WindowSlides(t *testing.T) {
	store := NewInMemoryStore()
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := store.Allow(ctx, "ip-1", 1, time.Minute)
	require.NoError(t, err)

	blocked, err := store.Allow(ctx, "ip-1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)
	assert.Equal(t, now.Add(time.Minute), blocked.ResetAt)
	assert.Equal(t, 60, blocked.RetryAfter)

	// Just before expiry the slot is still taken, just after it frees up.
	now = now.Add(59 * time.Second)
	blocked, err = store.Allow(ctx, "ip-1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)
	assert.Equal(t, 1, blocked.RetryAfter)

	now = now.Add(2 * time.Second)
	allowed, err := store.Allow(ctx, "ip-1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed.Allowed)
}

func TestInMemoryStore_EvictsExpiredKeys(t *testing.T) {
	store := NewInMemoryStore()
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	// An address scan: many keys seen once each.
	for _, key := range []string{"ip-1", "ip-2", "ip-3", "ip-4"} {
		_, err := store.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
	}
	assert.Len(t, store.windows, 4)

	// Once every timestamp has expired the entries must not linger.
	now = now.Add(2 * time.Minute)
	_, err := store.Allow(ctx, "ip-5", 3, time.Minute)
	require.NoError(t, err)
	assert.Len(t, store.windows, 1)
	assert.Contains(t, store.windows, "ip-5")
}

func TestInMemoryStore_ConcurrentAllowsNeverExceedLimit(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	allowed := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := store.Allow(ctx, "ip-1", 5, time.Minute)
			assert.NoError(t, err)
			if result.Allowed {
				allowed <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(allowed)

	assert.Len(t, allowed, 5)
}
