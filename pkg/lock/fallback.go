package lock

import (
	"context"
	"errors"

	"stagebook/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// FallbackLocker uses the primary locker and switches to the secondary one
// when the primary fails for reasons other than contention.
type FallbackLocker struct {
	primary   Locker
	secondary Locker
	logger    *logger.Logger
}

func NewFallbackLocker(primary, secondary Locker, log *logger.Logger) *FallbackLocker {
	if log == nil {
		log = logger.GetDefault()
	}
	return &FallbackLocker{primary: primary, secondary: secondary, logger: log}
}

func (l *FallbackLocker) Acquire(ctx context.Context, key string) (Lease, error) {
	lease, err := l.primary.Acquire(ctx, key)
	if err == nil || errors.Is(err, ErrNotAcquired) || ctx.Err() != nil {
		return lease, err
	}

	l.logger.ErrorWithContext(ctx, "Distributed lock unavailable, using local lock", err, map[string]interface{}{
		"lock_key": key,
	})
	return l.secondary.Acquire(ctx, key)
}

// New returns the locker for the given Redis client: Redis with a local
// fallback, or local only when client is nil.
func New(client *redis.Client, opts Options, log *logger.Logger) Locker {
	local := NewLocalLocker(opts)
	if client == nil {
		return local
	}
	return NewFallbackLocker(NewRedisLocker(client, opts), local, log)
}
