package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// admit runs prune, count and record as one step on the server.
var admit = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
if redis.call('ZCARD', key) >= limit then
  return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return 1
`)

// RateLimitStore keeps one sorted set of event times per user and action.
type RateLimitStore struct {
	rdb *redis.Client
}

func NewRateLimitStore(rdb *redis.Client) *RateLimitStore {
	return &RateLimitStore{rdb: rdb}
}

func (s *RateLimitStore) Admit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (bool, error) {
	admitted, err := admit.Run(ctx, s.rdb,
		[]string{fmt.Sprintf(KeyRateLimit, key)},
		now.UnixMilli(), window.Milliseconds(), limit, uuid.NewString(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("admit %s: %w", key, err)
	}
	return admitted == 1, nil
}
