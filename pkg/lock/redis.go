package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "flipfit:lock:"

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

type RedisLocker struct {
	client  redis.Cmdable
	ttl     time.Duration
	retry   time.Duration
	tokenFn func() string
}

func NewRedisLocker(client redis.Cmdable, ttl, retry time.Duration) *RedisLocker {
	return &RedisLocker{
		client:  client,
		ttl:     ttl,
		retry:   retry,
		tokenFn: uuid.NewString,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := redisKeyPrefix + key
	token := l.tokenFn()
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, timeoutError(key, ctx.Err())
			}
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return l.releaser(redisKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, timeoutError(key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) releaser(redisKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()
			_ = l.client.Eval(ctx, releaseScript, []string{redisKey}, token).Err()
		})
	}
}
