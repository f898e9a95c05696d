package idgen

import (
	"context"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

// Clock is the millisecond time source of a Generator.
type Clock interface {
	NowMillis() int64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() int64

func (f ClockFunc) NowMillis() int64 { return f() }

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}

// RedisClock reads the Redis server's TIME so that generators on different
// hosts share one time line. It falls back to the local clock when Redis is
// unreachable.
type RedisClock struct {
	client  redis.Cmdable
	timeout time.Duration
}

func NewRedisClock(client redis.Cmdable, timeout time.Duration) *RedisClock {
	if timeout <= 0 {
		timeout = 200 * time.Millisecond
	}
	return &RedisClock{client: client, timeout: timeout}
}

func (r *RedisClock) NowMillis() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	now, err := r.client.Time(ctx).Result()
	if err != nil {
		logger.Debugw("Redis TIME unavailable, using local clock", "error", err.Error())
		return time.Now().UnixMilli()
	}
	return now.UnixMilli()
}
