package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Deletes the key only while it still holds our token, so an expired lease
// never removes a lock taken over by another holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// Client is the subset of the Redis client used for locking
type Client interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisLocker takes locks with SET NX PX shared by every instance
type RedisLocker struct {
	client   Client
	opts     Options
	newToken func() string
}

// NewRedisLocker creates a Redis backed locker
func NewRedisLocker(client Client, opts Options) *RedisLocker {
	return &RedisLocker{client: client, opts: opts.withDefaults(), newToken: uuid.NewString}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (Lease, error) {
	token := l.newToken()
	deadline := time.Now().Add(l.opts.Wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.opts.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return &redisLease{client: l.client, key: key, token: token}, nil
		}

		if !time.Now().Before(deadline) {
			return nil, ErrNotAcquired
		}
		if err := sleep(ctx, l.opts.Retry); err != nil {
			return nil, err
		}
	}
}

type redisLease struct {
	client Client
	key    string
	token  string
	once   sync.Once
}

func (l *redisLease) Release(ctx context.Context) error {
	var err error
	l.once.Do(func() {
		err = releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
		if err != nil {
			err = fmt.Errorf("failed to release lock %s: %w", l.key, err)
		}
	})
	return err
}
