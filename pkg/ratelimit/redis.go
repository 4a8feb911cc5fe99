package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rejected calls must not consume the counter, so the check and the
// conditional INCR run atomically in one script.
var fixedWindowScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current >= tonumber(ARGV[1]) then
  return 1
end
current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLimiter is the shared-counter variant of the fixed window, for
// deployments with more than one instance. When Redis is unreachable it
// falls back to the in-process limiter rather than failing open.
type RedisLimiter struct {
	client   *redis.Client
	limit    int
	window   time.Duration
	prefix   string
	fallback *MemoryLimiter
}

func NewRedis(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{
		client:   client,
		limit:    limit,
		window:   window,
		prefix:   "rl:analyze:",
		fallback: NewMemory(limit, window),
	}
}

func (l *RedisLimiter) Limited(identity string) bool {
	if l.client == nil {
		return l.fallback.Limited(identity)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	res, err := fixedWindowScript.Run(ctx, l.client,
		[]string{l.prefix + identity},
		l.limit, l.window.Milliseconds(),
	).Int()
	if err != nil {
		return l.fallback.Limited(identity)
	}
	return res == 1
}
