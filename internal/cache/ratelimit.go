package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter - счетчик запросов в фиксированном окне (INCR + EXPIRE).
type FixedWindowLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

type LimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

func NewFixedWindowLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow учитывает запрос клиента key в текущем окне.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (LimitResult, error) {
	now := l.now()
	windowIdx := now.UnixNano() / int64(l.window)
	windowEnd := time.Unix(0, (windowIdx+1)*int64(l.window))
	redisKey := l.prefix + "ratelimit:" + key + ":" + strconv.FormatInt(windowIdx, 10)

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return LimitResult{}, err
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}

	return LimitResult{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetIn:   windowEnd.Sub(now),
	}, nil
}
