package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// draft:{user_id} -> JSON encoded intake.Draft
	KeyDraft = "draft:%d"
	// ratelimit:{user_id}:{action} -> sorted set of admitted events scored by unix ms
	KeyRateLimit = "ratelimit:%s"
)

// New connects and pings so a wrong address fails at startup.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
