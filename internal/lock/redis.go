package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only when the caller still holds it, so an
// expired-and-reacquired lock is never released by the old holder.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisLocker implements Locker with SET NX, mirroring the usual
// single-instance Redis lock.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, value, ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, key, value string) error {
	return l.client.Eval(ctx, releaseScript, []string{key}, value).Err()
}
