//go:build integration

package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"singate/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	require.NoError(s.T(), s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestAllowUpToLimit() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := s.store.Allow(ctx, "ip-1", 3, time.Minute)
		require.NoError(s.T(), err)
		assert.True(s.T(), result.Allowed)
		assert.Equal(s.T(), 2-i, result.Remaining)
	}

	result, err := s.store.Allow(ctx, "ip-1", 3, time.Minute)
	require.NoError(s.T(), err)
	assert.False(s.T(), result.Allowed)
	assert.Equal(s.T(), 0, result.Remaining)
	assert.GreaterOrEqual(s.T(), result.RetryAfter, 1)
}

func (s *RedisStoreSuite) TestKeysAreIndependent() {
	ctx := context.Background()

	_, err := s.store.Allow(ctx, "ip-1", 1, time.Minute)
	require.NoError(s.T(), err)
	blocked, err := s.store.Allow(ctx, "ip-1", 1, time.Minute)
	require.NoError(s.T(), err)
	assert.False(s.T(), blocked.Allowed)

	other, err := s.store.Allow(ctx, "ip-2", 1, time.Minute)
	require.NoError(s.T(), err)
	assert.True(s.T(), other.Allowed)
}

func (s *RedisStoreSuite) TestConcurrentAllowsNeverExceedLimit() {
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	allowed := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.store.Allow(ctx, "ip-1", 5, time.Minute)
			assert.NoError(s.T(), err)
			if result.Allowed {
				allowed <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(allowed)

	assert.Len(s.T(), allowed, 5)
}

func (s *RedisStoreSuite) TestWindowSlides() {
	ctx := context.Background()

	_, err := s.store.Allow(ctx, "ip-1", 1, time.Second)
	require.NoError(s.T(), err)
	blocked, err := s.store.Allow(ctx, "ip-1", 1, time.Second)
	require.NoError(s.T(), err)
	assert.False(s.T(), blocked.Allowed)

	assert.Eventually(s.T(), func() bool {
		result, err := s.store.Allow(ctx, "ip-1", 1, time.Second)
		return err == nil && result.Allowed
	}, 3*time.Second, 100*time.Millisecond, "window should free up after a second")
}
