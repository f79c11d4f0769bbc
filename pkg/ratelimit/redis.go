package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Lua script for atomic check-and-increment with TTL on first set.
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// ARGV[2] = max limit
// Returns: [allowed, current_count, ttl_remaining]
const incrLuaScript = `
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
if count >= tonumber(ARGV[2]) then
    return {0, count, redis.call('TTL', KEYS[1])}
end
count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return {1, count, redis.call('TTL', KEYS[1])}
`

// RedisStore is a Store backed by a shared Redis instance, giving all
// serving instances one view of the counters.
type RedisStore struct {
	client *goredis.Client
}

func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	ttlSeconds := int(window.Seconds())

	result, err := s.client.Eval(ctx, incrLuaScript, []string{key}, ttlSeconds, limit).Result()
	if err != nil {
		return Result{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 3 {
		return Result{}, fmt.Errorf("unexpected redis result format")
	}

	allowed, _ := arr[0].(int64)
	count, _ := arr[1].(int64)
	ttl, _ := arr[2].(int64)

	return Result{
		Allowed: allowed == 1,
		Count:   int(count),
		ResetAt: time.Now().Add(time.Duration(ttl) * time.Second),
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (int, time.Time, error) {
	count, err := s.client.Get(ctx, key).Int()
	if err == goredis.Nil {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit get failed: %w", err)
	}
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit ttl failed: %w", err)
	}
	return count, time.Now().Add(ttl), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
