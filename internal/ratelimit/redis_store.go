package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the fixed-window counters in Redis so the limit holds
// across processes. INCR and the window expiry are applied atomically via a
// Lua script.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var incrScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return count
`)

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	result, err := incrScript.Run(ctx, s.client, []string{"ratelimit:" + key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}

	return result.(int64), nil
}
