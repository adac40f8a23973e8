package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// allowScript trims, counts and records in one atomic step so concurrent
// requests cannot slip past the limit between the count and the insert.
// Scores are unix milliseconds: they stay within Lua's number precision,
// nanoseconds do not.
var allowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, window)
	allowed = 1
	count = count + 1
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local reset = now
if oldest[2] then
	reset = tonumber(oldest[2])
end
return {allowed, count, reset}
`)

// RedisStore implements Store with one sorted set per key: members are
// request timestamps, trimmed to the window on every check. All replicas
// share the same counts.
type RedisStore struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// Allow records one request against key if the window has room.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := s.now()
	redisKey := "ratelimit:" + key
	member := strconv.FormatInt(now.UnixNano(), 10)

	values, err := allowScript.Run(ctx, s.client, []string{redisKey},
		now.UnixMilli(), window.Milliseconds(), limit, member).Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit window check: %w", err)
	}
	if len(values) != 3 {
		return Result{}, fmt.Errorf("ratelimit window check: unexpected reply of %d values", len(values))
	}

	allowed := values[0].(int64) == 1
	count := int(values[1].(int64))
	resetAt := time.UnixMilli(values[2].(int64)).Add(window)

	result := Result{
		Allowed: allowed,
		Limit:   limit,
		ResetAt: resetAt,
	}
	if !allowed {
		result.RetryAfter = retryAfterSeconds(resetAt, now)
		return result, nil
	}
	if remaining := limit - count; remaining > 0 {
		result.Remaining = remaining
	}
	return result, nil
}
